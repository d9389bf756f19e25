package main

import (
	"fmt"
	"time"

	"github.com/pbanos/hedgecut/queue"
	"github.com/pbanos/hedgecut/queue/json"
	"github.com/pbanos/hedgecut/queue/redisq"
	"github.com/spf13/cobra"
	redis "gopkg.in/redis.v5"
)

type queueConfig struct {
	redisAddr     string
	redisPassword string
	redisDB       int
	queueID       string
	taskMaxRun    time.Duration
	lockTTL       time.Duration
}

func (qc *queueConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&(qc.redisAddr), "redis-addr", "localhost:6379", "address of the redis server backing the deletion queue")
	cmd.PersistentFlags().StringVar(&(qc.redisPassword), "redis-password", "", "password for the redis server")
	cmd.PersistentFlags().IntVar(&(qc.redisDB), "redis-db", 0, "redis database backing the deletion queue")
	cmd.PersistentFlags().StringVar(&(qc.queueID), "queue", "hedgecut", "prefix of the redis keys of the deletion queue")
	cmd.PersistentFlags().DurationVar(&(qc.taskMaxRun), "task-max-run", time.Minute, "time after which a running forget request is considered dropped (0 disables it)")
	cmd.PersistentFlags().DurationVar(&(qc.lockTTL), "lock-ttl", 5*time.Second, "time after which locks on queued forget requests expire")
}

func (qc *queueConfig) queue() (queue.Queue, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:     qc.redisAddr,
		Password: qc.redisPassword,
		DB:       qc.redisDB,
	})
	if err := rc.Ping().Err(); err != nil {
		rc.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %v", qc.redisAddr, err)
	}
	return redisq.New(qc.queueID, rc, qc.taskMaxRun, qc.lockTTL, json.New()), nil
}
