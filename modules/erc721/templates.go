package erc721

const contractTemplate = `#![cfg_attr(not(any(feature = "export-abi", test)), no_main)]
extern crate alloc;

mod erc721;

use stylus_sdk::{
    msg,
    prelude::*,
    alloy_primitives::{Address, U256}
};
use crate::erc721::{Erc721, Erc721Params};

/// Immutable definitions
struct {{.CollectionName}}Params;
impl Erc721Params for {{.CollectionName}}Params {
    const NAME: &'static str = "{{.CollectionName}}";
    const SYMBOL: &'static str = "{{.Symbol}}";
}

// Define the entrypoint as a Solidity storage object.
sol_storage! {
    #[entrypoint]
    struct {{.CollectionName}} {
        #[borrow]
        Erc721<{{.CollectionName}}Params> erc721;
    }
}

#[public]
#[inherit(Erc721<{{.CollectionName}}Params>)]
impl {{.CollectionName}} {
    /// Mints an NFT to the caller
    pub fn mint(&mut self) -> Result<(), Vec<u8>> {
        let minter = msg::sender();
        self.erc721.mint(minter)?;
        Ok(())
    }

    /// Mints an NFT to the specified address
    pub fn mint_to(&mut self, to: Address) -> Result<(), Vec<u8>> {
        self.erc721.mint(to)?;
        Ok(())
    }
{{- if .SafeMint}}

    /// Mints an NFT and calls onErc721Received with empty data
    pub fn safe_mint(&mut self, to: Address) -> Result<(), Vec<u8>> {
        Erc721::safe_mint(self, to, Vec::new())?;
        Ok(())
    }
{{- end}}

    /// Burns an NFT owned by the caller
    pub fn burn(&mut self, token_id: U256) -> Result<(), Vec<u8>> {
        self.erc721.burn(msg::sender(), token_id)?;
        Ok(())
    }
}
`

const cargoTemplate = `[package]
name = "{{.Crate}}"
version = "0.1.0"
edition = "2021"
description = "Stylus ERC-721 collection for {{.Project}}"

[dependencies]
alloy-primitives = "0.7"
alloy-sol-types = "0.7"
stylus-sdk = "0.6"

[features]
export-abi = ["stylus-sdk/export-abi"]

[lib]
crate-type = ["lib", "cdylib"]
`
