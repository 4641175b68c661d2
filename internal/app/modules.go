package app

import (
	"github.com/mosaicgen/mosaic/internal/registry"
	"github.com/mosaicgen/mosaic/modules/chainui"
	"github.com/mosaicgen/mosaic/modules/erc20"
	"github.com/mosaicgen/mosaic/modules/erc721"
	"github.com/mosaicgen/mosaic/modules/scaffold"
	"github.com/mosaicgen/mosaic/modules/walletauth"
)

// coreModules is the definitive list of all generator units that are
// compiled into the mosaic binary.
var coreModules = []registry.Module{
	&scaffold.Module{},
	&erc20.Module{},
	&erc721.Module{},
	&walletauth.Module{},
	&chainui.Module{},
}
