package restapi_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transfer_tracker/internal/adapters/restapi"
	"transfer_tracker/internal/config"
	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/core/domain/repository"
	"transfer_tracker/internal/core/mocks/mock_transferparser"
	"transfer_tracker/internal/logger"
	"transfer_tracker/pkg/transferparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testAddress = "0x71c7656ec7ab88b098defb751b7401b5f6d8976f"
	testHash    = "0x1111111111111111111111111111111111111111111111111111111111111111"
)

func newTestRouter(t *testing.T) (http.Handler, *mock_transferparser.Parser) {
	t.Helper()
	parser := mock_transferparser.NewParser(t)
	h, err := restapi.NewHTTPHandler(parser, logger.FromSlog(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return restapi.NewRouter(h), parser
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp restapi.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestNewHTTPHandler_NilDependencies(t *testing.T) {
	_, err := restapi.NewHTTPHandler(nil, logger.FromSlog(nil))
	assert.Error(t, err)
	_, err = restapi.NewHTTPHandler(mock_transferparser.NewParser(t), nil)
	assert.Error(t, err)
}

func TestNewServer_NilDependencies(t *testing.T) {
	l := logger.FromSlog(nil)
	_, err := restapi.NewServer(nil, l, &config.ServerConfig{Port: ":0"})
	assert.Error(t, err)
	_, err = restapi.NewServer(mock_transferparser.NewParser(t), l, nil)
	assert.Error(t, err)

	srv, err := restapi.NewServer(mock_transferparser.NewParser(t), l, &config.ServerConfig{Port: ":0"})
	require.NoError(t, err)
	assert.NotNil(t, srv)
}

func TestHandleHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleGetCurrentBlock(t *testing.T) {
	tests := []struct {
		name     string
		block    int64
		err      error
		wantCode int
		wantBody string
	}{
		{name: "ok", block: 17_000_000, wantCode: http.StatusOK, wantBody: `{"current_block":17000000}`},
		{name: "not started", err: repository.ErrScanStateNotInitialized, wantCode: http.StatusServiceUnavailable},
		{name: "repo failure", err: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, parser := newTestRouter(t)
			parser.On("GetCurrentBlock", mock.Anything).Return(tt.block, tt.err).Once()

			rec := do(t, router, http.MethodGet, "/current_block", "")
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandleSubscribe(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		router, parser := newTestRouter(t)
		parser.On("Subscribe", mock.Anything, testAddress).Return(nil).Once()

		rec := do(t, router, http.MethodPost, "/subscribe", `{"address":"`+testAddress+`"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"message":"Address subscribed successfully"}`, rec.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := do(t, router, http.MethodPost, "/subscribe", `{"address":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty address", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := do(t, router, http.MethodPost, "/subscribe", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Address cannot be empty", decodeError(t, rec))
	})

	t.Run("invalid address", func(t *testing.T) {
		router, parser := newTestRouter(t)
		parser.On("Subscribe", mock.Anything, "0xnope").
			Return(fmt.Errorf("address validation failed: %w", domain.ErrInvalidAddressFormat)).Once()

		rec := do(t, router, http.MethodPost, "/subscribe", `{"address":"0xnope"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec), "invalid ethereum address format")
	})

	t.Run("repo failure", func(t *testing.T) {
		router, parser := newTestRouter(t)
		parser.On("Subscribe", mock.Anything, testAddress).Return(errors.New("db down")).Once()

		rec := do(t, router, http.MethodPost, "/subscribe", `{"address":"`+testAddress+`"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to subscribe address", decodeError(t, rec), "internal details are not leaked")
	})

	t.Run("wrong method", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := do(t, router, http.MethodGet, "/subscribe", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHandleGetTransfers(t *testing.T) {
	router, parser := newTestRouter(t)
	want := []transferparser.Transfer{{
		Hash:   testHash,
		From:   testAddress,
		To:     "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Value:  "0xde0b6b3a7640000",
		Status: "included",
		Confirmation: transferparser.Confirmation{
			BlockNumber:      100,
			TransactionIndex: 2,
			Timestamp:        1_600_000_000,
			Fee:              transferparser.Fee{Amount: "0.000021", Currency: "ETH", BaseUnits: "21000000000000"},
		},
	}}
	parser.On("GetTransfers", mock.Anything, testAddress).Return(want, nil).Once()
	parser.On("GetTransfers", mock.Anything, "bad").
		Return(nil, fmt.Errorf("address validation failed: %w", domain.ErrInvalidAddressFormat)).Once()

	rec := do(t, router, http.MethodGet, "/transfers/"+testAddress, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []transferparser.Transfer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, want, got)
	assert.Contains(t, rec.Body.String(), `"blockNumber":100`)
	assert.Contains(t, rec.Body.String(), `"baseUnits":"21000000000000"`)

	rec = do(t, router, http.MethodGet, "/transfers/bad", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetConfirmation(t *testing.T) {
	tests := []struct {
		name     string
		hash     string
		conf     transferparser.Confirmation
		err      error
		wantCode int
	}{
		{
			name:     "found",
			hash:     testHash,
			conf:     transferparser.Confirmation{BlockNumber: 100, TransactionIndex: 2, Timestamp: 1_600_000_000},
			wantCode: http.StatusOK,
		},
		{name: "not found", hash: testHash, err: fmt.Errorf("lookup: %w", domain.ErrTransferNotFound), wantCode: http.StatusNotFound},
		{name: "invalid hash", hash: "0x12", err: domain.ErrInvalidTransactionHashFormat, wantCode: http.StatusBadRequest},
		{name: "failure", hash: testHash, err: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, parser := newTestRouter(t)
			parser.On("GetConfirmation", mock.Anything, tt.hash).Return(tt.conf, tt.err).Once()

			rec := do(t, router, http.MethodGet, "/confirmations/"+tt.hash, "")
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				var got transferparser.Confirmation
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, tt.conf, got)
			}
		})
	}
}
