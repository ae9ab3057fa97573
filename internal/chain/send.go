package chain

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// sendAndConfirm 构建、签名并发送交易，阻塞等待至目标确认等级
//
// payer作为费用账户，signers须覆盖交易涉及的全部签名方(含payer)。
func (c *Client) sendAndConfirm(
	ctx context.Context,
	op string,
	instructions []solana.Instruction,
	payer solana.PublicKey,
	signers ...*solana.PrivateKey,
) (solana.Signature, error) {
	recent, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Signature{}, wrapError(op, errors.Wrap(err, "获取最新区块哈希失败"))
	}

	tx, err := solana.NewTransaction(
		instructions,
		recent.Value.Blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return solana.Signature{}, wrapError(op, errors.Wrap(err, "构建交易失败"))
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for _, signer := range signers {
			if signer.PublicKey().Equals(key) {
				return signer
			}
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, wrapError(op, errors.Wrap(err, "交易签名失败"))
	}

	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, wrapError(op, errors.Wrap(err, "发送交易失败"))
	}

	if err := c.waitForConfirmation(ctx, sig); err != nil {
		return sig, wrapError(op, err)
	}
	return sig, nil
}

// waitForConfirmation 轮询签名状态直到达到确认等级或超时
func (c *Client) waitForConfirmation(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "等待交易%s确认超时", sig)
		case <-ticker.C:
			resp, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
			if err != nil {
				// 瞬时查询失败继续轮询
				continue
			}
			if len(resp.Value) == 0 || resp.Value[0] == nil {
				continue
			}
			status := resp.Value[0]
			if status.Err != nil {
				return errors.Errorf("交易%s执行失败: %v", sig, status.Err)
			}
			switch status.ConfirmationStatus {
			case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
				return nil
			}
		}
	}
}
