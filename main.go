package main

import "tasktracker/internal/app"

// @title           TaskTracker API
// @version         1.0
// @description     Бэкенд трекера задач для Telegram Mini App: компании, сотрудники, задачи, уведомления.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
