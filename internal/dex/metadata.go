package dex

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"rangehedge/internal/chain"
)

// PoolMeta holds the immutable pool fields the fetch stage needs.
type PoolMeta struct {
	Token0      common.Address
	Token1      common.Address
	FeePPM      uint32
	TickSpacing int32
}

// FetchPoolMeta loads immutable pool metadata from chain.
func FetchPoolMeta(ctx context.Context, chainClient *chain.Client, pool common.Address) (PoolMeta, error) {
	if chainClient == nil {
		return PoolMeta{}, fmt.Errorf("chain client is nil")
	}

	poolABI, err := V3PoolABI()
	if err != nil {
		return PoolMeta{}, fmt.Errorf("parse pool abi: %w", err)
	}

	values, err := callMethod(ctx, chainClient, pool, poolABI, "token0")
	if err != nil {
		return PoolMeta{}, err
	}
	token0, err := asAddress(values[0])
	if err != nil {
		return PoolMeta{}, fmt.Errorf("token0: %w", err)
	}

	values, err = callMethod(ctx, chainClient, pool, poolABI, "token1")
	if err != nil {
		return PoolMeta{}, err
	}
	token1, err := asAddress(values[0])
	if err != nil {
		return PoolMeta{}, fmt.Errorf("token1: %w", err)
	}

	values, err = callMethod(ctx, chainClient, pool, poolABI, "fee")
	if err != nil {
		return PoolMeta{}, err
	}
	feeInt, err := asBigInt(values[0])
	if err != nil {
		return PoolMeta{}, fmt.Errorf("fee: %w", err)
	}

	values, err = callMethod(ctx, chainClient, pool, poolABI, "tickSpacing")
	if err != nil {
		return PoolMeta{}, err
	}
	tickSpacingInt, err := asBigInt(values[0])
	if err != nil {
		return PoolMeta{}, fmt.Errorf("tick spacing: %w", err)
	}
	tickSpacing, err := int24FromBig(tickSpacingInt)
	if err != nil {
		return PoolMeta{}, fmt.Errorf("tick spacing: %w", err)
	}

	return PoolMeta{
		Token0:      token0,
		Token1:      token1,
		FeePPM:      uint32(feeInt.Uint64()),
		TickSpacing: tickSpacing,
	}, nil
}

// FetchTokenDecimals loads a token's decimals via an ERC20 call.
func FetchTokenDecimals(ctx context.Context, chainClient *chain.Client, token common.Address) (uint8, error) {
	if chainClient == nil {
		return 0, fmt.Errorf("chain client is nil")
	}

	parsed, err := erc20ABIInstance()
	if err != nil {
		return 0, fmt.Errorf("parse erc20 abi: %w", err)
	}

	values, err := callMethod(ctx, chainClient, token, parsed, "decimals")
	if err != nil {
		return 0, err
	}
	return asUint8(values[0])
}

func callMethod(ctx context.Context, chainClient *chain.Client, target common.Address, parsed abi.ABI, method string) ([]interface{}, error) {
	data, err := parsed.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &target, Data: data}
	resp, err := chainClient.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case uint16:
		return uint8(v), nil
	case uint32:
		return uint8(v), nil
	case uint64:
		return uint8(v), nil
	case *big.Int:
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
}

func int24FromBig(value *big.Int) (int32, error) {
	min := big.NewInt(-1 << 23)
	max := big.NewInt((1 << 23) - 1)
	if value.Cmp(min) < 0 || value.Cmp(max) > 0 {
		return 0, fmt.Errorf("int24 overflow: %s", value.String())
	}
	return int32(value.Int64()), nil
}
