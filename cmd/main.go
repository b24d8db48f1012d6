package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"CPCPerform/internal/appmanager"
	"CPCPerform/internal/session"
)

func main() {
	// Load .env for local dev; absent in container deployments
	_ = godotenv.Load("../.env")

	// Shared in-memory upload store; nothing persists across restarts.
	appmanager.SetUploadStore(session.NewManager())

	manager := appmanager.NewAppManager()

	servicesCfg, err := appmanager.LoadServiceSequence("../services.yaml")
	if err != nil {
		log.Fatal("failed to load service sequence:", err)
	}

	manager.AutoRegisterServices(servicesCfg)

	if err := manager.StartAll(); err != nil {
		log.Fatal("failed to start:", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	if err := manager.StopAll(); err != nil {
		log.Fatal("failed to stop:", err)
	}
}
