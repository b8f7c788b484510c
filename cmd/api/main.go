package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/attendly-app/attendance-backend-go/internal/config"
	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-app/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
	appHTTP "github.com/attendly-app/attendance-backend-go/internal/handler/http"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/cron"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/database"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly-app/attendance-backend-go/internal/repository/memory"
	"github.com/attendly-app/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendly-app/attendance-backend-go/internal/service/attendance"
	leaveService "github.com/attendly-app/attendance-backend-go/internal/service/leave"
	settingsService "github.com/attendly-app/attendance-backend-go/internal/service/settings"
	violationService "github.com/attendly-app/attendance-backend-go/internal/service/violation"
)

type repositories struct {
	tx           database.TxRunner
	settingsRepo settings.Repository
	dayRepo      attendance.AttendanceDayRepository
	balanceRepo  leave.BalanceRepository
	requestRepo  leave.RequestRepository
	recordRepo   violation.RecordRepository
	countRepo    violation.CountRepository
	penaltyRepo  violation.PenaltyRepository
	employeeRepo employee.EmployeeRepository
}

func buildRepositories(cfg *config.Config) (repositories, error) {
	if cfg.Database.Driver == "memory" {
		store := memory.NewStore()
		return repositories{
			tx:           store,
			settingsRepo: memory.NewSettingsRepository(store),
			dayRepo:      memory.NewAttendanceDayRepository(store),
			balanceRepo:  memory.NewLeaveBalanceRepository(store),
			requestRepo:  memory.NewLeaveRequestRepository(store),
			recordRepo:   memory.NewViolationRecordRepository(store),
			countRepo:    memory.NewViolationCountRepository(store),
			penaltyRepo:  memory.NewPenaltyRepository(store),
			employeeRepo: memory.NewEmployeeRepository(store),
		}, nil
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return repositories{}, fmt.Errorf("connecting to database: %w", err)
	}

	return repositories{
		tx:           postgresql.NewTxRunner(db),
		settingsRepo: postgresql.NewSettingsRepository(db),
		dayRepo:      postgresql.NewAttendanceDayRepository(db),
		balanceRepo:  postgresql.NewLeaveBalanceRepository(db),
		requestRepo:  postgresql.NewLeaveRequestRepository(db),
		recordRepo:   postgresql.NewViolationRecordRepository(db),
		countRepo:    postgresql.NewViolationCountRepository(db),
		penaltyRepo:  postgresql.NewPenaltyRepository(db),
		employeeRepo: postgresql.NewEmployeeRepository(db),
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "attendance-backend"),
		slog.String("env", cfg.App.Env),
	)

	repos, err := buildRepositories(cfg)
	if err != nil {
		fmt.Println("Error building storage layer:", err)
		return
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	settingsSvc := settingsService.NewProvider(repos.settingsRepo, logger)
	accrualSvc := violationService.NewAccrualService(
		repos.tx,
		settingsSvc,
		repos.recordRepo,
		repos.countRepo,
		repos.penaltyRepo,
		logger,
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.tx,
		settingsSvc,
		accrualSvc,
		repos.dayRepo,
		repos.requestRepo,
		repos.employeeRepo,
		logger,
	)
	leaveSvc := leaveService.NewLeaveService(
		repos.tx,
		settingsSvc,
		repos.balanceRepo,
		repos.requestRepo,
		logger,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	reportHandler := appHTTP.NewReportHandler(accrualSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)

	router := appHTTP.NewRouter(
		jwtService,
		attendanceHandler,
		leaveHandler,
		reportHandler,
		settingsHandler,
	)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, settingsSvc, repos.settingsRepo, repos.employeeRepo)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
