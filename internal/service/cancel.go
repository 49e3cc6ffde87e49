package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ParlaySync/internal/interfaces"
	"ParlaySync/internal/model"
	"ParlaySync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CancellationService 撤单：只允许撤销所有腿都尚未开赛的 PENDING 单
type CancellationService struct {
	slipRepo repository.SlipRepository
	states   interfaces.GameStateChecker
	logger   *logrus.Logger
}

// NewCancellationService 创建撤单服务
func NewCancellationService(slipRepo repository.SlipRepository, states interfaces.GameStateChecker, logger *logrus.Logger) *CancellationService {
	return &CancellationService{slipRepo: slipRepo, states: states, logger: logger}
}

// Cancel 撤销投注单，返回是否成功及可展示的说明。
// 任何一条腿的状态不是 pre（包括查询失败）都拒绝撤单；成功时硬删除单和腿
func (s *CancellationService) Cancel(ctx context.Context, slipID uint64) (bool, string) {
	log := s.logger.WithField("slip_id", slipID)

	slip, err := s.slipRepo.GetSlip(ctx, slipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Sprintf("Slip #%d not found.", slipID)
		}
		log.WithError(err).Warn("查询投注单失败")
		return false, fmt.Sprintf("Slip #%d could not be loaded: %v", slipID, err)
	}
	if !strings.EqualFold(string(slip.Status), string(model.SlipPending)) {
		return false, fmt.Sprintf("Slip #%d is not pending (status %s).", slipID, slip.Status)
	}

	for _, leg := range slip.Legs {
		state, err := s.states.GameState(ctx, leg.EventID)
		if err != nil {
			log.WithError(err).WithField("event_id", leg.EventID).Warn("查询比赛状态失败，拒绝撤单")
			return false, fmt.Sprintf("Cannot cancel: leg %d (event %s) could not be checked: %v", leg.Position, leg.EventID, err)
		}
		if state != model.GameStatePre {
			return false, fmt.Sprintf("Cannot cancel: leg %d (event %s) has already started (state %s).", leg.Position, leg.EventID, state)
		}
	}

	if err := s.slipRepo.DeleteSlip(ctx, slipID); err != nil {
		log.WithError(err).Error("删除投注单失败")
		return false, fmt.Sprintf("Slip #%d was not canceled: %v", slipID, err)
	}
	log.Info("投注单已撤销")
	return true, fmt.Sprintf("Slip #%d canceled.", slipID)
}
