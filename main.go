package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/nyayasetu/legal-aid-api/api/handlers"
	"github.com/nyayasetu/legal-aid-api/api/scheduler"
	"github.com/nyayasetu/legal-aid-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //initialize case store and router
		log.Fatal(err)
	}

	s := scheduler.NewScheduler(a.Store, &a.Config)
	s.Start()
	defer s.Stop()

	zap.S().Infow("legal-aid-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
