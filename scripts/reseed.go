// 手动触发课程数据重建脚本
//
// 正常部署时种子数据在应用启动阶段自动写入（仅当表为空）。
// 此脚本用于课程内容更新后强制重建：清空课程相关表并重新写入种子数据，
// 学习进度与计划数据不受影响。
//
// 用法: go run scripts/reseed.go

package main

import (
	"log"
	"os"

	"pwnpath_backend/internal/config"
	"pwnpath_backend/internal/model"
	"pwnpath_backend/pkg/database"

	"gopkg.in/yaml.v3"
)

type seedConfig struct {
	Database struct {
		User      string `yaml:"user"`
		Password  string `yaml:"password"`
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		DBName    string `yaml:"dbname"`
		Charset   string `yaml:"charset"`
		ParseTime bool   `yaml:"parse_time"`
	} `yaml:"database"`
}

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg seedConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	db, err := database.InitDB(&config.DatabaseConfig{
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		DBName:    cfg.Database.DBName,
		Charset:   cfg.Database.Charset,
		ParseTime: cfg.Database.ParseTime,
	})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	tables := []interface{}{
		&model.QuizQuestion{},
		&model.Quiz{},
		&model.Activity{},
		&model.LessonResource{},
		&model.Milestone{},
		&model.Lesson{},
		&model.Phase{},
	}
	for _, t := range tables {
		if err := db.Unscoped().Where("1 = 1").Delete(t).Error; err != nil {
			log.Fatalf("清空课程表失败: %v", err)
		}
	}

	if err := database.Seed(db); err != nil {
		log.Fatalf("种子数据写入失败: %v", err)
	}

	log.Println("课程数据重建完成")
}
