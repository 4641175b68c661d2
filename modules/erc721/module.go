package erc721

import (
	"context"
	"fmt"
	"reflect"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config defines the configuration accepted by the erc721 generator.
type Config struct {
	CollectionName string `mosaic:"collection_name"`
	Symbol         string `mosaic:"symbol"`
	SafeMint       bool   `mosaic:"safe_mint"`
}

// OnGenerateERC721 is the handler for the 'erc721' generator. It emits a
// Stylus NFT collection contract crate under the contracts category.
func OnGenerateERC721(ctx context.Context, cfg any, ec *codegen.ExecutionContext) (*codegen.Output, error) {
	c := cfg.(*Config)
	project := ec.InputString("project_name", "project")
	ec.Logger.Debug("Generating ERC-721 contract.", "collection", c.CollectionName)

	out := codegen.NewOutput()

	contract, err := codegen.RenderTemplate("erc721/lib.rs", contractTemplate, map[string]any{
		"CollectionName": c.CollectionName,
		"Symbol":         c.Symbol,
		"SafeMint":       c.SafeMint,
	})
	if err != nil {
		return nil, err
	}
	out.AddFile("erc721/src/lib.rs", contract, "contracts")

	cargo, err := codegen.RenderTemplate("erc721/Cargo.toml", cargoTemplate, map[string]any{
		"Crate":   "erc721-stylus",
		"Project": project,
	})
	if err != nil {
		return nil, err
	}
	out.AddFile("erc721/Cargo.toml", cargo, "contracts")

	out.AddEnvVar("RPC_URL", "JSON-RPC endpoint of the target Arbitrum chain.",
		codegen.EnvVarOptions{Required: true, Default: "https://sepolia-rollup.arbitrum.io/rpc"})
	out.AddEnvVar("PRIVATE_KEY", "Deployer key for contract deployment.",
		codegen.EnvVarOptions{Required: true, Secret: true})

	out.AddScript("deploy:erc721",
		"cargo stylus deploy --private-key $PRIVATE_KEY --endpoint $RPC_URL",
		"Deploy the ERC-721 contract.")

	out.AddDoc("erc721.md", fmt.Sprintf("%s Collection", c.CollectionName),
		fmt.Sprintf("The `%s` (%s) NFT collection lives in `contracts/erc721`.", c.CollectionName, c.Symbol))

	return out, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator("OnGenerateERC721", &registry.RegisteredGenerator{
		NewConfig:  func() any { return new(Config) },
		ConfigType: reflect.TypeOf(Config{}),
		Fn:         OnGenerateERC721,
	})
}
