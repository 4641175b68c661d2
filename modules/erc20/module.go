package erc20

import (
	"context"
	"fmt"
	"reflect"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config defines the configuration accepted by the erc20 generator.
type Config struct {
	TokenName string `mosaic:"token_name"`
	Symbol    string `mosaic:"symbol"`
	Decimals  int    `mosaic:"decimals"`
	Mintable  bool   `mosaic:"mintable"`
	Burnable  bool   `mosaic:"burnable"`
}

// OnGenerateERC20 is the handler for the 'erc20' generator. It emits a
// Stylus fungible token contract crate under the contracts category.
func OnGenerateERC20(ctx context.Context, cfg any, ec *codegen.ExecutionContext) (*codegen.Output, error) {
	c := cfg.(*Config)
	if c.Decimals == 0 {
		c.Decimals = 18
	}
	project := ec.InputString("project_name", "project")
	ec.Logger.Debug("Generating ERC-20 contract.", "token", c.TokenName, "symbol", c.Symbol)

	out := codegen.NewOutput()

	contract, err := codegen.RenderTemplate("erc20/lib.rs", contractTemplate, map[string]any{
		"TokenName": c.TokenName,
		"Symbol":    c.Symbol,
		"Decimals":  c.Decimals,
		"Mintable":  c.Mintable,
		"Burnable":  c.Burnable,
	})
	if err != nil {
		return nil, err
	}
	out.AddFile("erc20/src/lib.rs", contract, "contracts")

	cargo, err := codegen.RenderTemplate("erc20/Cargo.toml", cargoTemplate, map[string]any{
		"Crate":   "erc20-stylus",
		"Project": project,
	})
	if err != nil {
		return nil, err
	}
	out.AddFile("erc20/Cargo.toml", cargo, "contracts")

	out.AddEnvVar("RPC_URL", "JSON-RPC endpoint of the target Arbitrum chain.",
		codegen.EnvVarOptions{Required: true, Default: "https://sepolia-rollup.arbitrum.io/rpc"})
	out.AddEnvVar("PRIVATE_KEY", "Deployer key for contract deployment.",
		codegen.EnvVarOptions{Required: true, Secret: true})

	out.AddScript("deploy:erc20",
		"cargo stylus deploy --private-key $PRIVATE_KEY --endpoint $RPC_URL",
		"Deploy the ERC-20 contract.")

	out.AddDoc("erc20.md", fmt.Sprintf("%s Token", c.TokenName),
		fmt.Sprintf("The `%s` (%s) fungible token lives in `contracts/erc20`. Run `cargo stylus check` before deploying.",
			c.TokenName, c.Symbol))

	return out, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator("OnGenerateERC20", &registry.RegisteredGenerator{
		NewConfig:  func() any { return new(Config) },
		ConfigType: reflect.TypeOf(Config{}),
		Fn:         OnGenerateERC20,
	})
}
