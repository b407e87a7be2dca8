package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	appHTTP "github.com/attendly/attendance-backend-go/internal/handler/http"
	"github.com/attendly/attendance-backend-go/internal/pkg/cron"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/oracle"
	"github.com/attendly/attendance-backend-go/internal/pkg/storage"
	"github.com/attendly/attendance-backend-go/internal/repository/memory"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendly/attendance-backend-go/internal/service/attendance"
	tabularService "github.com/attendly/attendance-backend-go/internal/service/tabular"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	var resultRepo attendance.ResultRepository
	switch cfg.ResultStore.Backend {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		resultRepo = postgresql.NewResultRepository(db)
	case "memory":
		resultRepo = memory.NewResultRepository()
	default:
		log.Fatal("Unsupported result store backend: ", cfg.ResultStore.Backend)
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	// The classifier is optional; without it the generic path runs on local
	// heuristics alone.
	var classifier oracle.Classifier
	if cfg.Oracle.URL != "" {
		classifier = oracle.NewClient(cfg.Oracle.URL, cfg.Oracle.APIKey, cfg.Oracle.Timeout)
	}

	attendanceSvc := attendanceService.NewAttendanceService(resultRepo, fileStorage, cfg.Policy, cfg.ResultStore.TTL)
	tabularSvc := tabularService.NewTabularService(classifier, cfg.Policy.Timezone)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	tabularHandler := appHTTP.NewTabularHandler(tabularSvc)

	scheduler := cron.NewScheduler()
	cron.NewResultJobs(resultRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(attendanceHandler, tabularHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
