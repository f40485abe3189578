package database

import (
	"fmt"
	"log"

	"pwnpath_backend/internal/config"
	"pwnpath_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := Seed(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 建表，测试环境也从这里走
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Phase{},
		&model.Lesson{},
		&model.Activity{},
		&model.LessonResource{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.Milestone{},
		&model.ProgressRecord{},
		&model.StudyLog{},
		&model.DailyPlan{},
		&model.StudySession{},
		&model.Challenge{},
		&model.ChallengeSubmission{},
		&model.Project{},
		&model.ProjectSubmission{},
	)
}
