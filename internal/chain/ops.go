package chain

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// MintTo 向目标Token账户铸造amount(最小单位)个token
//
// authority必须是Mint的铸造权限账户。
func (c *Client) MintTo(
	ctx context.Context,
	payer *solana.PrivateKey,
	mint solana.PublicKey,
	destination solana.PublicKey,
	authority *solana.PrivateKey,
	amount uint64,
) (solana.Signature, error) {
	instruction := token.NewMintToInstruction(
		amount,
		mint,
		destination,
		authority.PublicKey(),
		nil,
	).Build()

	return c.sendAndConfirm(ctx, "mint_to",
		[]solana.Instruction{instruction}, payer.PublicKey(), payer, authority)
}

// Transfer 在两个Token账户间转移amount(最小单位)个token
//
// authority是source的持有者或在委托额度内的被授权账户。
func (c *Client) Transfer(
	ctx context.Context,
	payer *solana.PrivateKey,
	source solana.PublicKey,
	destination solana.PublicKey,
	authority *solana.PrivateKey,
	amount uint64,
) (solana.Signature, error) {
	instruction := token.NewTransferInstruction(
		amount,
		source,
		destination,
		authority.PublicKey(),
		nil,
	).Build()

	return c.sendAndConfirm(ctx, "transfer",
		[]solana.Instruction{instruction}, payer.PublicKey(), payer, authority)
}

// Approve 授权delegate在amount(最小单位)额度内支配source账户
func (c *Client) Approve(
	ctx context.Context,
	payer *solana.PrivateKey,
	source solana.PublicKey,
	delegate solana.PublicKey,
	owner *solana.PrivateKey,
	amount uint64,
) (solana.Signature, error) {
	instruction := token.NewApproveInstruction(
		amount,
		source,
		delegate,
		owner.PublicKey(),
		nil,
	).Build()

	return c.sendAndConfirm(ctx, "approve",
		[]solana.Instruction{instruction}, payer.PublicKey(), payer, owner)
}

// Revoke 撤销source账户上的全部委托授权
func (c *Client) Revoke(
	ctx context.Context,
	payer *solana.PrivateKey,
	source solana.PublicKey,
	owner *solana.PrivateKey,
) (solana.Signature, error) {
	instruction := token.NewRevokeInstruction(
		source,
		owner.PublicKey(),
		nil,
	).Build()

	return c.sendAndConfirm(ctx, "revoke",
		[]solana.Instruction{instruction}, payer.PublicKey(), payer, owner)
}

// Burn 从source账户销毁amount(最小单位)个token
func (c *Client) Burn(
	ctx context.Context,
	payer *solana.PrivateKey,
	source solana.PublicKey,
	mint solana.PublicKey,
	owner *solana.PrivateKey,
	amount uint64,
) (solana.Signature, error) {
	instruction := token.NewBurnInstruction(
		amount,
		source,
		mint,
		owner.PublicKey(),
		nil,
	).Build()

	return c.sendAndConfirm(ctx, "burn",
		[]solana.Instruction{instruction}, payer.PublicKey(), payer, owner)
}
