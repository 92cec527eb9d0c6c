package service

import (
	"github.com/cabmobile/monitor/internal/domain"
)

// StatisticsAPI is re-exported from domain for convenience
type StatisticsAPI = domain.StatisticsAPI
