// @title 热能释放曲线 后端 API
// @version 1.0
// @description 课堂数据采集服务：学生提交时间/温度表，教师查看与导出。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"heatcurve_backend/internal/app"
	"heatcurve_backend/internal/config"
	"heatcurve_backend/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
