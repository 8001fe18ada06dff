package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/eth-wallet/internal/config"
)

func TestSetupRouter(t *testing.T) {
	config.Set(&config.Config{
		KeystoreDir:       t.TempDir(),
		AccountName:       "Account",
		KeystoreLightKDF:  true,
		RPCURL:            "https://node.example",
		RPCTimeoutSeconds: 1,
		GasPriceWei:       "0",
	})
	t.Cleanup(func() { config.Set(nil) })

	router, err := SetupRouter()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/account", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/contract/invoke")
}

func TestSetupRouterBadConfig(t *testing.T) {
	config.Set(&config.Config{
		KeystoreDir:       t.TempDir(),
		RPCURL:            "https://node.example",
		RPCTimeoutSeconds: 1,
		GasPriceWei:       "lots",
	})
	t.Cleanup(func() { config.Set(nil) })

	_, err := SetupRouter()
	assert.Error(t, err)
}
