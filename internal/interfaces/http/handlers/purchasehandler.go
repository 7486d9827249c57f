package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/walletnames/registrar/internal/application/purchase/processor"
	"github.com/walletnames/registrar/internal/application/purchase/usecases"
	"github.com/walletnames/registrar/internal/interfaces/http/middleware"
	"github.com/walletnames/registrar/internal/shared/logger"
	"github.com/walletnames/registrar/internal/shared/utils"
	"github.com/walletnames/registrar/internal/shared/utils/logutil"
)

type purchaseUseCase interface {
	Execute(ctx context.Context, cmd usecases.PurchaseCommand) (*usecases.PurchaseResult, error)
}

type lookupChargeUseCase interface {
	Execute(ctx context.Context, externID string) (*usecases.ChargeSummary, error)
}

type PurchaseHandler struct {
	purchaseUC purchaseUseCase
	lookupUC   lookupChargeUseCase
	logger     logger.Interface
}

func NewPurchaseHandler(purchaseUC purchaseUseCase, lookupUC lookupChargeUseCase, logger logger.Interface) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseUC: purchaseUC,
		lookupUC:   lookupUC,
		logger:     logger,
	}
}

type PurchaseRequest struct {
	Address      string  `json:"address" example:"bob@good.domain"`
	ReferralCode string  `json:"referralCode" example:"acme"`
	PublicKey    string  `json:"publicKey" example:"02a1633cafcc01ebfb6d78e39f687a1f0995c62fc95f51ead10a02ee0be551b5dc"`
	RedirectURL  *string `json:"redirectUrl,omitempty" binding:"omitempty,url" example:"https://wallet.example/done"`
}

// PurchaseResponse carries true in Success on the free path, or the
// processor charge wrapped as {"charge": ...} otherwise.
type PurchaseResponse struct {
	Success   any  `json:"success" swaggertype:"object"`
	AccountID uint `json:"account_id"`
	Error     bool `json:"error"`
}

type ChargeEnvelope struct {
	Charge *processor.Charge `json:"charge"`
}

// Purchase handles POST /api/v1/purchase
//
//	@Summary		Purchase a name
//	@Description	Reserve a domain or name@domain address for a buyer key and create the payment
//	@Tags			purchase
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		PurchaseRequest	true	"Purchase request"
//	@Success		200		{object}	PurchaseResponse
//	@Failure		400		{object}	utils.ErrorBody
//	@Failure		401		{object}	utils.ErrorBody
//	@Failure		404		{object}	utils.ErrorBody
//	@Failure		429		{object}	utils.ErrorBody
//	@Failure		502		{object}	utils.ErrorBody
//	@Router			/purchase [post]
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debugw("invalid purchase request body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.purchaseUC.Execute(c.Request.Context(), usecases.PurchaseCommand{
		Address:      req.Address,
		ReferralCode: req.ReferralCode,
		PublicKey:    req.PublicKey,
		RedirectURL:  req.RedirectURL,
		UserID:       middleware.UserID(c),
	})
	if err != nil {
		h.logger.Infow("purchase rejected",
			"error", err,
			"address", req.Address,
			"referral_code", req.ReferralCode,
			"public_key", logutil.TruncateForLog(req.PublicKey, 16),
		)
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := PurchaseResponse{AccountID: result.AccountID, Success: true}
	if !result.IsFree() {
		resp.Success = ChargeEnvelope{Charge: result.Charge}
	}
	c.JSON(http.StatusOK, resp)
}

// GetCharge handles GET /api/v1/charges/:extern_id
//
//	@Summary		Look up a charge
//	@Description	Return the wallet, account and payment recorded for an external charge id
//	@Tags			charges
//	@Produce		json
//	@Security		BearerAuth
//	@Param			extern_id	path		string	true	"External charge id"
//	@Success		200			{object}	usecases.ChargeSummary
//	@Failure		401			{object}	utils.ErrorBody
//	@Failure		403			{object}	utils.ErrorBody
//	@Failure		404			{object}	utils.ErrorBody
//	@Router			/charges/{extern_id} [get]
func (h *PurchaseHandler) GetCharge(c *gin.Context) {
	summary, err := h.lookupUC.Execute(c.Request.Context(), c.Param("extern_id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
