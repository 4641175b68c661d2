package walletauth

const useWalletTemplate = `import { useCallback, useState } from "react";

const EXPECTED_CHAIN_ID = {{.ChainID}};

export interface WalletState {
  address: string | null;
  chainId: number | null;
  connecting: boolean;
}

export function useWallet() {
  const [state, setState] = useState<WalletState>({
    address: null,
    chainId: null,
    connecting: false,
  });

  const connect = useCallback(async () => {
    const ethereum = (window as any).ethereum;
    if (!ethereum) {
      throw new Error("no injected wallet found");
    }
    setState((s) => ({ ...s, connecting: true }));
    try {
      const [address] = await ethereum.request({ method: "eth_requestAccounts" });
      const chainHex = await ethereum.request({ method: "eth_chainId" });
      const chainId = parseInt(chainHex, 16);
      if (chainId !== EXPECTED_CHAIN_ID) {
        throw new Error("wallet connected to unexpected chain " + chainId);
      }
      setState({ address, chainId, connecting: false });
    } catch (err) {
      setState((s) => ({ ...s, connecting: false }));
      throw err;
    }
  }, []);

  return { ...state, connect };
}
`

const providerTemplate = `import { createContext, useContext, type ReactNode } from "react";
import { useWallet } from "../hooks/useWallet";

// Provider flavor: {{.Provider}}
const WalletContext = createContext<ReturnType<typeof useWallet> | null>(null);

export function WalletProvider({ children }: { children: ReactNode }) {
  const wallet = useWallet();
  return <WalletContext.Provider value={wallet}>{children}</WalletContext.Provider>;
}

export function useWalletContext() {
  const ctx = useContext(WalletContext);
  if (!ctx) {
    throw new Error("useWalletContext must be used within WalletProvider");
  }
  return ctx;
}
`
