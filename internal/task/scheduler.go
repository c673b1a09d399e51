package task

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler runs registered tasks on their cron schedule.
type Scheduler struct {
	cron  *cron.Cron
	tasks []Task
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		tasks: make([]Task, 0),
	}
}

// Register adds a task to the scheduler and queues it on its cron schedule.
func (s *Scheduler) Register(task Task) {
	s.tasks = append(s.tasks, task)

	_, err := s.cron.AddFunc(task.Schedule(), func() {
		if err := task.Execute(context.Background()); err != nil {
			log.Printf("[%s] job failed: %v", task.Name(), err)
		}
	})
	if err != nil {
		log.Printf("failed to schedule task %s: %v", task.Name(), err)
		return
	}

	log.Printf("[%s] scheduled with cron: %s", task.Name(), task.Schedule())
}

// RunAll executes every registered task once, immediately. Called at process
// start so sweeps do not wait for their first tick.
func (s *Scheduler) RunAll(ctx context.Context) {
	for _, task := range s.tasks {
		if err := task.Execute(ctx); err != nil {
			log.Printf("[%s] startup run failed: %v", task.Name(), err)
		}
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("task scheduler started with %d registered tasks", len(s.tasks))
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("task scheduler stopped")
}
