package registry

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/mosaicgen/mosaic/internal/config"
)

type tokenConfig struct {
	TokenName string `mosaic:"token_name"`
	Decimals  int    `mosaic:"decimals"`
}

func defWithConfig(handler string, fields map[string]*config.ConfigField) *config.GeneratorDefinition {
	return &config.GeneratorDefinition{ID: "erc20", Handler: handler, Config: fields}
}

func TestValidateRegistry(t *testing.T) {
	t.Run("matching manifest and struct pass", func(t *testing.T) {
		r := New()
		r.RegisterGenerator("OnGenerateERC20", &RegisteredGenerator{
			NewConfig:  func() any { return new(tokenConfig) },
			ConfigType: reflect.TypeOf(tokenConfig{}),
		})
		r.Definitions["erc20"] = defWithConfig("OnGenerateERC20", map[string]*config.ConfigField{
			"token_name": {Name: "token_name", Type: cty.String},
			"decimals":   {Name: "decimals", Type: cty.Number},
		})

		require.NoError(t, r.ValidateRegistry(context.Background()))
	})

	t.Run("missing handler is reported", func(t *testing.T) {
		r := New()
		r.Definitions["erc20"] = defWithConfig("OnGenerateERC20", nil)

		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "handler 'OnGenerateERC20' is not registered")
	})

	t.Run("manifest field without struct field is reported", func(t *testing.T) {
		r := New()
		r.RegisterGenerator("OnGenerateERC20", &RegisteredGenerator{
			NewConfig:  func() any { return new(tokenConfig) },
			ConfigType: reflect.TypeOf(tokenConfig{}),
		})
		r.Definitions["erc20"] = defWithConfig("OnGenerateERC20", map[string]*config.ConfigField{
			"token_name": {Name: "token_name", Type: cty.String},
			"decimals":   {Name: "decimals", Type: cty.Number},
			"symbol":     {Name: "symbol", Type: cty.String},
		})

		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "manifest declares config 'symbol' which is not found in Go struct")
	})

	t.Run("struct field without manifest field is reported", func(t *testing.T) {
		r := New()
		r.RegisterGenerator("OnGenerateERC20", &RegisteredGenerator{
			NewConfig:  func() any { return new(tokenConfig) },
			ConfigType: reflect.TypeOf(tokenConfig{}),
		})
		r.Definitions["erc20"] = defWithConfig("OnGenerateERC20", map[string]*config.ConfigField{
			"token_name": {Name: "token_name", Type: cty.String},
		})

		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Go struct has field for config 'decimals'")
	})

	t.Run("type mismatch is reported", func(t *testing.T) {
		r := New()
		r.RegisterGenerator("OnGenerateERC20", &RegisteredGenerator{
			NewConfig:  func() any { return new(tokenConfig) },
			ConfigType: reflect.TypeOf(tokenConfig{}),
		})
		r.Definitions["erc20"] = defWithConfig("OnGenerateERC20", map[string]*config.ConfigField{
			"token_name": {Name: "token_name", Type: cty.Bool},
			"decimals":   {Name: "decimals", Type: cty.Number},
		})

		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "type mismatch")
	})

	t.Run("manifest config without any struct is reported", func(t *testing.T) {
		r := New()
		r.RegisterGenerator("OnGenerateERC20", &RegisteredGenerator{})
		r.Definitions["erc20"] = defWithConfig("OnGenerateERC20", map[string]*config.ConfigField{
			"token_name": {Name: "token_name", Type: cty.String},
		})

		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no config struct")
	})
}

func TestRegisterGenerator_DuplicatePanics(t *testing.T) {
	r := New()
	r.RegisterGenerator("OnGenerate", &RegisteredGenerator{})
	assert.Panics(t, func() {
		r.RegisterGenerator("OnGenerate", &RegisteredGenerator{})
	})
}
