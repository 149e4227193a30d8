package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/olharfest/inscricao-backend/internal/app/api/server"
	"github.com/olharfest/inscricao-backend/internal/app/service/admin"
	"github.com/olharfest/inscricao-backend/internal/app/service/audit"
	"github.com/olharfest/inscricao-backend/internal/app/service/checkout"
	"github.com/olharfest/inscricao-backend/internal/app/service/inscription"
	"github.com/olharfest/inscricao-backend/internal/app/service/webhook"
	"github.com/olharfest/inscricao-backend/internal/platform/db"
	"github.com/olharfest/inscricao-backend/pkg/config"
	"github.com/olharfest/inscricao-backend/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	audit.Module,
	inscription.Module,
	checkout.Module,
	webhook.Module,
	admin.Module,
)
