package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletnames/registrar/internal/domain/registration"
)

func TestNewAccount(t *testing.T) {
	addr, err := registration.Split("bob@good.domain")
	require.NoError(t, err)

	acc, err := NewAccount(addr, " pk1 ", 7)
	require.NoError(t, err)
	assert.Equal(t, "good.domain", acc.Domain())
	require.NotNil(t, acc.Address())
	assert.Equal(t, "bob", *acc.Address())
	assert.Equal(t, "pk1", acc.OwnerKey())
	assert.Equal(t, uint(7), acc.WalletID())
	assert.Equal(t, "bob@good.domain", acc.Name())

	dom, err := registration.Split("good.domain")
	require.NoError(t, err)
	acc, err = NewAccount(dom, "pk1", 7)
	require.NoError(t, err)
	assert.Nil(t, acc.Address())
	assert.Equal(t, "good.domain", acc.Name())
}

func TestNewAccountValidation(t *testing.T) {
	dom, err := registration.Split("good.domain")
	require.NoError(t, err)

	_, err = NewAccount(dom, "", 1)
	assert.Error(t, err)

	_, err = NewAccount(dom, "pk", 0)
	assert.Error(t, err)
}
