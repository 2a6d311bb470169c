package eth

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/federation-of-frogs/backend/config"
)

var (
	RpcTimeOut = time.Second * 5

	receiptPollInterval = time.Second

	erc20TransferGasLimit  = uint64(100_000)
	nativeTransferGasLimit = uint64(21_000)
)

var (
	transferMethodID  = crypto.Keccak256([]byte("transfer(address,uint256)"))[:4]
	balanceOfMethodID = crypto.Keccak256([]byte("balanceOf(address)"))[:4]
)

// TreasuryClient is the payment rail over an EVM chain. It signs transfers
// from the configured treasury account, either in the native currency or an
// ERC-20 token. Since RPC endpoints are often unstable, it keeps a list of
// them and uses the first one that answers.
type TreasuryClient struct {
	cfg config.EthConfigs

	lock   sync.Mutex
	client *ethclient.Client
}

func NewTreasuryClient(cfg config.EthConfigs) *TreasuryClient {
	return &TreasuryClient{cfg: cfg}
}

func (c *TreasuryClient) GetTreasuryBalance(ctx context.Context) (*big.Int, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, err
	}

	treasury := common.HexToAddress(c.cfg.TreasuryAddress)
	if c.cfg.TokenAddress == "" {
		return client.BalanceAt(ctx, treasury, nil)
	}

	token := common.HexToAddress(c.cfg.TokenAddress)
	data := append([]byte{}, balanceOfMethodID...)
	data = append(data, common.LeftPadBytes(treasury.Bytes(), 32)...)

	result, err := client.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		c.dropClient()
		return nil, fmt.Errorf("call balanceOf: %w", err)
	}

	return new(big.Int).SetBytes(result), nil
}

func (c *TreasuryClient) Transfer(
	ctx context.Context, destination string, amount *big.Int,
) (string, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return "", err
	}

	privateKey, err := crypto.HexToECDSA(c.cfg.TreasuryPrivateKey)
	if err != nil {
		return "", fmt.Errorf("invalid treasury key: %w", err)
	}

	tx, err := c.buildTransaction(ctx, client, privateKey, destination, amount)
	if err != nil {
		c.dropClient()
		return "", err
	}

	signedTx, err := ethtypes.SignTx(tx, c.signer(), privateKey)
	if err != nil {
		return "", err
	}

	if err := client.SendTransaction(ctx, signedTx); err != nil {
		c.dropClient()
		return "", fmt.Errorf("send transaction: %w", err)
	}

	if err := c.waitConfirmed(ctx, client, signedTx.Hash()); err != nil {
		return "", err
	}

	return signedTx.Hash().Hex(), nil
}

func (c *TreasuryClient) buildTransaction(
	ctx context.Context,
	client *ethclient.Client,
	privateKey *ecdsa.PrivateKey,
	destination string,
	amount *big.Int,
) (*ethtypes.Transaction, error) {
	from := crypto.PubkeyToAddress(privateKey.PublicKey)

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("pending nonce: %w", err)
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}

	to := common.HexToAddress(destination)
	if c.cfg.TokenAddress == "" {
		return ethtypes.NewTransaction(nonce, to, amount, nativeTransferGasLimit, gasPrice, nil), nil
	}

	token := common.HexToAddress(c.cfg.TokenAddress)
	data := append([]byte{}, transferMethodID...)
	data = append(data, common.LeftPadBytes(to.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(amount.Bytes(), 32)...)

	return ethtypes.NewTransaction(nonce, token, big.NewInt(0), erc20TransferGasLimit, gasPrice, data), nil
}

func (c *TreasuryClient) signer() ethtypes.Signer {
	chainID := big.NewInt(c.cfg.Chain.ID)
	if c.cfg.Chain.UseEip1559 {
		return ethtypes.NewLondonSigner(chainID)
	}

	return ethtypes.NewEIP155Signer(chainID)
}

func (c *TreasuryClient) waitConfirmed(
	ctx context.Context, client *ethclient.Client, txHash common.Hash,
) error {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := client.TransactionReceipt(ctx, txHash)
		if err == nil {
			if receipt.Status != ethtypes.ReceiptStatusSuccessful {
				return fmt.Errorf("transaction %s reverted", txHash.Hex())
			}

			return nil
		}

		if !errors.Is(err, ethereum.NotFound) {
			return fmt.Errorf("transaction receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("confirmation of %s: %w", txHash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// getClient returns the cached client or dials the first healthy RPC.
func (c *TreasuryClient) getClient(ctx context.Context) (*ethclient.Client, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	for _, rpc := range c.cfg.Chain.Rpcs {
		client, err := ethclient.Dial(rpc)
		if err != nil {
			continue
		}

		checkCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		_, err = client.BlockNumber(checkCtx)
		cancel()

		if err != nil {
			client.Close()
			continue
		}

		c.client = client
		return c.client, nil
	}

	return nil, fmt.Errorf("no healthy rpc for chain %s", c.cfg.Chain.Chain)
}

func (c *TreasuryClient) dropClient() {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}
