// Package wire provides dependency injection for the planvault
// application. It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/planvault/internal/adapters/sqlite"
	"github.com/example/planvault/internal/app"
	"github.com/example/planvault/internal/config"
	"github.com/example/planvault/internal/db"
	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/tokens"
)

var (
	planService     primary.PlanService
	taskListService primary.TaskListService
	taskService     primary.TaskService
	skillService    primary.SkillService
	promptService   primary.PromptService
	fragmentService primary.FragmentService
	searchService   primary.SearchService
	once            sync.Once
)

// PlanService returns the singleton PlanService instance.
func PlanService() primary.PlanService {
	once.Do(initServices)
	return planService
}

// TaskListService returns the singleton TaskListService instance.
func TaskListService() primary.TaskListService {
	once.Do(initServices)
	return taskListService
}

// TaskService returns the singleton TaskService instance.
func TaskService() primary.TaskService {
	once.Do(initServices)
	return taskService
}

// SkillService returns the singleton SkillService instance.
func SkillService() primary.SkillService {
	once.Do(initServices)
	return skillService
}

// PromptService returns the singleton PromptService instance.
func PromptService() primary.PromptService {
	once.Do(initServices)
	return promptService
}

// FragmentService returns the singleton FragmentService instance.
func FragmentService() primary.FragmentService {
	once.Do(initServices)
	return fragmentService
}

// SearchService returns the singleton SearchService instance.
func SearchService() primary.SearchService {
	once.Do(initServices)
	return searchService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	path, err := config.DatabasePath()
	if err != nil {
		log.Fatalf("failed to resolve database path: %v", err)
	}

	database, err := db.Open(path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) sharing one connection
	planRepo := sqlite.NewPlanRepository(database)
	taskListRepo := sqlite.NewTaskListRepository(database)
	taskRepo := sqlite.NewTaskRepository(database)
	skillRepo := sqlite.NewSkillRepository(database)
	promptRepo := sqlite.NewPromptRepository(database)
	fragmentRepo := sqlite.NewFragmentRepository(database)
	searchRepo := sqlite.NewSearchRepository(database)

	counter := tokens.NewCounter()

	// Services (primary ports implementation)
	planService = app.NewPlanService(planRepo)
	taskListService = app.NewTaskListService(taskListRepo)
	taskService = app.NewTaskService(taskRepo)
	skillService = app.NewSkillService(skillRepo, counter)
	promptService = app.NewPromptService(promptRepo, counter)
	fragmentService = app.NewFragmentService(fragmentRepo, promptRepo, counter)
	searchService = app.NewSearchService(searchRepo)
}
