package chain

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// mintAccountSize SPL Token Mint账户的固定长度
const mintAccountSize = 82

// MintInfo 链上Mint账户解码结果
type MintInfo struct {
	// Address Mint账户地址
	Address solana.PublicKey
	// Decimals 小数位数
	Decimals uint8
	// Supply 当前总供应量(最小单位)
	Supply uint64
	// MintAuthority 铸造权限账户,nil表示权限已移除
	MintAuthority *solana.PublicKey
	// FreezeAuthority 冻结权限账户
	FreezeAuthority *solana.PublicKey
}

// CreateMint 创建并初始化新的SPL Token Mint账户
//
// payer支付租金与手续费并作为铸造权限，返回新Mint地址与交易签名。
func (c *Client) CreateMint(
	ctx context.Context,
	payer *solana.PrivateKey,
	decimals uint8,
) (solana.PublicKey, solana.Signature, error) {
	mintWallet := solana.NewWallet()
	mintPub := mintWallet.PublicKey()
	payerPub := payer.PublicKey()

	rent, err := c.rpc.GetMinimumBalanceForRentExemption(ctx, mintAccountSize, c.commitment)
	if err != nil {
		return solana.PublicKey{}, solana.Signature{},
			wrapError("create_mint", errors.Wrap(err, "查询Mint账户免租金额失败"))
	}

	instructions := []solana.Instruction{
		system.NewCreateAccountInstruction(
			rent,
			mintAccountSize,
			solana.TokenProgramID,
			payerPub,
			mintPub,
		).Build(),
		token.NewInitializeMintInstruction(
			decimals,
			payerPub,
			payerPub,
			mintPub,
			solana.SysVarRentPubkey,
		).Build(),
	}

	sig, err := c.sendAndConfirm(ctx, "create_mint", instructions, payerPub, payer, &mintWallet.PrivateKey)
	if err != nil {
		return solana.PublicKey{}, solana.Signature{}, err
	}
	return mintPub, sig, nil
}

// GetMint 查询并解码Mint账户
func (c *Client) GetMint(ctx context.Context, mint solana.PublicKey) (*MintInfo, error) {
	resp, err := c.rpc.GetAccountInfoWithOpts(ctx, mint, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, wrapError("get_mint", errors.Errorf("Mint账户%s不存在", mint))
		}
		return nil, wrapError("get_mint", errors.Wrapf(err, "查询Mint账户%s失败", mint))
	}

	var mintData token.Mint
	if err := mintData.Decode(resp.Value.Data.GetBinary()); err != nil {
		return nil, wrapError("get_mint", errors.Wrapf(err, "解码Mint账户%s数据失败", mint))
	}

	info := &MintInfo{
		Address:  mint,
		Decimals: mintData.Decimals,
		Supply:   mintData.Supply,
	}
	if mintData.MintAuthority != nil {
		authority := *mintData.MintAuthority
		info.MintAuthority = &authority
	}
	if mintData.FreezeAuthority != nil {
		authority := *mintData.FreezeAuthority
		info.FreezeAuthority = &authority
	}
	return info, nil
}
