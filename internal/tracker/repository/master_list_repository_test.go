package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang-broker-tracker/internal/tracker/config"
	"golang-broker-tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const equityCSV = `SYMBOL, NAME OF COMPANY, SERIES, DATE OF LISTING, PAID UP VALUE, MARKET LOT, ISIN NUMBER, FACE VALUE
TATAMOTORS,Tata Motors Limited,EQ,01-JAN-1998,2,1,INE155A01022,2
INFY,Infosys Limited,EQ,08-FEB-1995,5,1,INE009A01021,5
,Missing Symbol Row,EQ,,,,INE000000000,1
`

func TestParseEquityCSV(t *testing.T) {
	stocks, err := parseEquityCSV(strings.NewReader(equityCSV))
	require.NoError(t, err)

	require.Len(t, stocks, 2)
	assert.Equal(t, "TATAMOTORS", stocks[0].Symbol)
	assert.Equal(t, "Tata Motors Limited", stocks[0].CompanyName)
	assert.Equal(t, "INE155A01022", stocks[0].ISIN)
	assert.Equal(t, "INFY", stocks[1].Symbol)
}

func TestParseEquityCSVMissingColumns(t *testing.T) {
	_, err := parseEquityCSV(strings.NewReader("A,B,C\n1,2,3\n"))
	assert.Error(t, err)
}

func TestMasterListDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(equityCSV))
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.MasterList.URL = server.URL

	repo := &masterListRepository{
		client: &http.Client{Timeout: time.Second},
		cfg:    cfg,
		logger: logger.NewNop(),
	}

	stocks, err := repo.Download(context.Background())
	require.NoError(t, err)
	assert.Len(t, stocks, 2)
}

func TestMasterListDownloadNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.MasterList.URL = server.URL

	repo := &masterListRepository{
		client: &http.Client{Timeout: time.Second},
		cfg:    cfg,
		logger: logger.NewNop(),
	}

	_, err := repo.Download(context.Background())
	assert.Error(t, err)
}
