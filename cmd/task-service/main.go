package main

import (
	_ "github.com/KarpovAlexandrGo/task-manager/docs" // Для Swagger (сгенерируется swag)
	"github.com/KarpovAlexandrGo/task-manager/internal/app"
	"github.com/KarpovAlexandrGo/task-manager/pkg/logger"
)

// @title           Task Manager API
// @version         1.0
// @description     In-memory task management service. Every JSON response is prefixed with )]}', and a newline.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

func main() {
	a, err := app.NewApp()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize app")
	}

	if err := a.Run(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to run app")
	}
}
