package walletauth

import (
	"context"
	"reflect"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config defines the configuration accepted by the walletauth generator.
type Config struct {
	Provider string `mosaic:"provider"`
	ChainID  int    `mosaic:"chain_id"`
}

// OnGenerateWalletAuth is the handler for the 'walletauth' generator. It
// emits a wallet connection hook and provider setup for the frontend.
func OnGenerateWalletAuth(ctx context.Context, cfg any, ec *codegen.ExecutionContext) (*codegen.Output, error) {
	c := cfg.(*Config)
	if c.Provider == "" {
		c.Provider = "metamask"
	}
	if c.ChainID == 0 {
		c.ChainID = 421614
	}
	ec.Logger.Debug("Generating wallet auth.", "provider", c.Provider, "chain_id", c.ChainID)

	out := codegen.NewOutput()

	hook, err := codegen.RenderTemplate("walletauth/useWallet.ts", useWalletTemplate, map[string]any{
		"ChainID": c.ChainID,
	})
	if err != nil {
		return nil, err
	}
	out.AddFile("hooks/useWallet.ts", hook, "ui")

	provider, err := codegen.RenderTemplate("walletauth/WalletProvider.tsx", providerTemplate, map[string]any{
		"Provider": c.Provider,
	})
	if err != nil {
		return nil, err
	}
	out.AddFile("providers/WalletProvider.tsx", provider, "ui")

	out.AddEnvVar("WALLETCONNECT_PROJECT_ID", "WalletConnect Cloud project id.",
		codegen.EnvVarOptions{Required: c.Provider == "walletconnect", Secret: true})

	out.AddDoc("wallet-auth.md", "Wallet Authentication",
		"Wrap the app in `WalletProvider` and read connection state through the `useWallet` hook.")

	return out, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator("OnGenerateWalletAuth", &registry.RegisteredGenerator{
		NewConfig:  func() any { return new(Config) },
		ConfigType: reflect.TypeOf(Config{}),
		Fn:         OnGenerateWalletAuth,
	})
}
