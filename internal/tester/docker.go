package tester

import (
	"fmt"
	"time"

	"github.com/emrgen/wiki/internal/model"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupPostgres starts a throwaway postgres container and returns a migrated
// connection to it with a function that removes the container.
func SetupPostgres() (*gorm.DB, func(), error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, fmt.Errorf("could not construct pool: %w", err)
	}

	// uses pool to try to connect to Docker
	err = pool.Client.Ping()
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=wiki",
			"POSTGRES_PASSWORD=wiki",
			"POSTGRES_DB=wiki",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not start resource: %w", err)
	}
	_ = resource.Expire(120)

	purge := func() {
		if err := pool.Purge(resource); err != nil {
			logrus.Errorf("could not purge resource: %s", err)
		}
	}

	dsn := fmt.Sprintf("postgres://wiki:wiki@%s/wiki?sslmode=disable", resource.GetHostPort("5432/tcp"))

	var pg *gorm.DB
	pool.MaxWait = time.Minute
	err = pool.Retry(func() error {
		var err error
		pg, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError:                           true,
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := pg.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	})
	if err != nil {
		purge()
		return nil, nil, fmt.Errorf("could not connect to postgres: %w", err)
	}

	if err := model.Migrate(pg); err != nil {
		purge()
		return nil, nil, err
	}

	return pg, purge, nil
}
