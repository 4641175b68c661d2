package erc20

const contractTemplate = `// Only run this as a WASM if the export-abi feature is not set.
#![cfg_attr(not(any(feature = "export-abi", test)), no_main)]
extern crate alloc;

mod erc20;

use alloy_primitives::{Address, U256};
use stylus_sdk::{
    msg,
    prelude::*
};
use crate::erc20::{Erc20, Erc20Params, Erc20Error};

/// Immutable definitions
struct {{.TokenName}}Params;
impl Erc20Params for {{.TokenName}}Params {
    const NAME: &'static str = "{{.TokenName}}";
    const SYMBOL: &'static str = "{{.Symbol}}";
    const DECIMALS: u8 = {{.Decimals}};
}

// Define the entrypoint as a Solidity storage object.
sol_storage! {
    #[entrypoint]
    struct {{.TokenName}} {
        #[borrow]
        Erc20<{{.TokenName}}Params> erc20;
    }
}

#[public]
#[inherit(Erc20<{{.TokenName}}Params>)]
impl {{.TokenName}} {
{{- if .Mintable}}
    /// Mints tokens to the caller
    pub fn mint(&mut self, value: U256) -> Result<(), Erc20Error> {
        self.erc20.mint(msg::sender(), value)?;
        Ok(())
    }

    /// Mints tokens to another address
    pub fn mint_to(&mut self, to: Address, value: U256) -> Result<(), Erc20Error> {
        self.erc20.mint(to, value)?;
        Ok(())
    }
{{- end}}
{{- if .Burnable}}
    /// Burns tokens held by the caller
    pub fn burn(&mut self, value: U256) -> Result<(), Erc20Error> {
        self.erc20.burn(msg::sender(), value)?;
        Ok(())
    }
{{- end}}
}
`

const cargoTemplate = `[package]
name = "{{.Crate}}"
version = "0.1.0"
edition = "2021"
description = "Stylus ERC-20 token for {{.Project}}"

[dependencies]
alloy-primitives = "0.7"
alloy-sol-types = "0.7"
stylus-sdk = "0.6"

[features]
export-abi = ["stylus-sdk/export-abi"]

[lib]
crate-type = ["lib", "cdylib"]
`
