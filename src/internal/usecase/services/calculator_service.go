package services

import (
	"context"
	"strings"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/models"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/calc"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/commons"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/logger"
)

type CalculatorService struct{}

func NewCalculatorService() *CalculatorService {
	return &CalculatorService{}
}

func (s *CalculatorService) Evaluate(_ context.Context, req models.EvaluateRequest) (commons.Response[models.EvaluateResponse], error) {
	expression := strings.TrimSpace(req.Expression)

	value, err := calc.Evaluate(expression)
	if err != nil {
		logger.Info("calculator service rejected expression", logger.Fields{
			"expression": expression,
			"error":      err.Error(),
		})
		return commons.FailureResponse[models.EvaluateResponse](err, "failed to evaluate"), err
	}

	return commons.SuccessResponse("expression evaluated", models.EvaluateResponse{
		Expression: expression,
		Result:     calc.Format(value),
	}), nil
}
