package api

import (
	"net/http"
	"strconv"

	"ParlaySync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WalletHandler 钱包查询
type WalletHandler struct {
	wallet *service.WalletService
	logger *logrus.Logger
}

// NewWalletHandler 创建 WalletHandler
func NewWalletHandler(wallet *service.WalletService, logger *logrus.Logger) *WalletHandler {
	return &WalletHandler{wallet: wallet, logger: logger}
}

// GetWallet 余额 GET /api/wallet
func (h *WalletHandler) GetWallet(c *gin.Context) {
	balance, err := h.wallet.Balance(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("GetWallet failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"owner": h.wallet.Owner(), "balance": balance.StringFixed(2)})
}

// History 流水 GET /api/wallet/history?limit=50
func (h *WalletHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	txs, err := h.wallet.History(c.Request.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("WalletHistory failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"owner": h.wallet.Owner(), "items": service.NewWalletTxItems(txs)})
}
