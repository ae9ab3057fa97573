package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinksLocal(t *testing.T) {
	links := New(false)

	assert.Equal(t,
		"https://amman-explorer.metaplex.com/#/address/So11111111111111111111111111111111111111112",
		links.Address("So11111111111111111111111111111111111111112"))
	assert.Equal(t,
		"https://amman-explorer.metaplex.com/#/tx/5sig",
		links.Tx("5sig"))
}

func TestLinksDevnet(t *testing.T) {
	links := New(true)

	assert.Equal(t,
		"https://amman-explorer.metaplex.com/#/address/abc?cluster=devnet",
		links.Address("abc"))
	assert.Equal(t,
		"https://amman-explorer.metaplex.com/#/tx/xyz?cluster=devnet",
		links.Tx("xyz"))
}
