package chain

import (
	"context"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// TokenAccountInfo 关联Token账户解码结果
type TokenAccountInfo struct {
	// Address Token账户地址
	Address solana.PublicKey
	// Mint 所属Mint
	Mint solana.PublicKey
	// Owner 持有者钱包地址
	Owner solana.PublicKey
	// Amount 余额(最小单位)
	Amount uint64
	// Delegate 被授权账户,nil表示无委托
	Delegate *solana.PublicKey
	// DelegatedAmount 委托额度(最小单位)
	DelegatedAmount uint64
}

// GetOrCreateAssociatedTokenAccount 幂等获取钱包在指定Mint下的关联Token账户
//
// 账户不存在时创建，已存在时直接返回，两种情况返回同一派生地址。
// 创建时返回交易签名，复用时签名为零值。
func (c *Client) GetOrCreateAssociatedTokenAccount(
	ctx context.Context,
	payer *solana.PrivateKey,
	owner solana.PublicKey,
	mint solana.PublicKey,
) (solana.PublicKey, solana.Signature, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, solana.Signature{},
			wrapError("get_or_create_ata", errors.Wrapf(err, "派生钱包%s关联账户地址失败", owner))
	}

	_, err = c.rpc.GetAccountInfoWithOpts(ctx, ata, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
	})
	if err == nil {
		// 账户已存在，幂等复用
		return ata, solana.Signature{}, nil
	}
	if !errors.Is(err, rpc.ErrNotFound) {
		return solana.PublicKey{}, solana.Signature{},
			wrapError("get_or_create_ata", errors.Wrapf(err, "查询关联账户%s失败", ata))
	}

	instruction := associatedtokenaccount.NewCreateInstruction(
		payer.PublicKey(),
		owner,
		mint,
	).Build()

	sig, err := c.sendAndConfirm(ctx, "get_or_create_ata", []solana.Instruction{instruction}, payer.PublicKey(), payer)
	if err != nil {
		return solana.PublicKey{}, solana.Signature{}, err
	}
	return ata, sig, nil
}

// GetTokenAccount 查询并解码Token账户
func (c *Client) GetTokenAccount(ctx context.Context, account solana.PublicKey) (*TokenAccountInfo, error) {
	resp, err := c.rpc.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, wrapError("get_token_account", errors.Errorf("Token账户%s不存在", account))
		}
		return nil, wrapError("get_token_account", errors.Wrapf(err, "查询Token账户%s失败", account))
	}

	var tokenAccount token.Account
	if err := bin.NewBinDecoder(resp.Value.Data.GetBinary()).Decode(&tokenAccount); err != nil {
		return nil, wrapError("get_token_account", errors.Wrapf(err, "解码Token账户%s数据失败", account))
	}

	info := &TokenAccountInfo{
		Address:         account,
		Mint:            tokenAccount.Mint,
		Owner:           tokenAccount.Owner,
		Amount:          tokenAccount.Amount,
		DelegatedAmount: tokenAccount.DelegatedAmount,
	}
	if tokenAccount.Delegate != nil {
		delegate := *tokenAccount.Delegate
		info.Delegate = &delegate
	}
	return info, nil
}

// GetTokenAccountBalance 查询Token账户余额(最小单位)
func (c *Client) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	resp, err := c.rpc.GetTokenAccountBalance(ctx, account, c.commitment)
	if err != nil {
		return 0, wrapError("get_token_balance", errors.Wrapf(err, "查询Token账户%s余额失败", account))
	}

	amount, err := parseUintAmount(resp.Value.Amount)
	if err != nil {
		return 0, wrapError("get_token_balance", errors.Wrapf(err, "解析Token账户%s余额失败", account))
	}
	return amount, nil
}
