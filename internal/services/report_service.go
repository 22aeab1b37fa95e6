package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tasktracker/internal/models"
	"tasktracker/internal/pdf"
	"tasktracker/internal/repositories"
)

type ReportService interface {
	// GenerateTaskReport строит PDF по всем задачам компании и возвращает
	// абсолютный путь сгенерированного файла под files root.
	GenerateTaskReport(ctx context.Context, companyID int64) (string, error)
}

type reportService struct {
	tasks     repositories.TaskRepository
	users     repositories.UserRepository
	companies repositories.CompanyRepository
	gen       pdf.Generator
}

func NewReportService(
	tasks repositories.TaskRepository,
	users repositories.UserRepository,
	companies repositories.CompanyRepository,
	gen pdf.Generator,
) ReportService {
	return &reportService{tasks: tasks, users: users, companies: companies, gen: gen}
}

func (s *reportService) GenerateTaskReport(ctx context.Context, companyID int64) (string, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return "", mapRepoErr(err)
	}
	tasks, err := s.tasks.FindAll(ctx, companyID, models.TaskFilter{})
	if err != nil {
		return "", err
	}

	// имена исполнителей — одним проходом по сотрудникам
	names := map[int64]string{}
	employees, err := s.users.ListByCompany(ctx, companyID)
	if err != nil {
		return "", err
	}
	for _, u := range employees {
		names[u.ID] = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}

	data := pdf.TaskReportData{
		CompanyName: company.Name,
		GeneratedAt: time.Now(),
		CountByStat: map[string]int{},
	}
	for _, t := range tasks {
		data.CountByStat[string(t.Status)]++
		assignee := names[t.AssigneeID]
		if assignee == "" {
			assignee = fmt.Sprintf("#%d", t.AssigneeID)
		}
		data.Rows = append(data.Rows, pdf.TaskReportRow{
			ID:       t.ID,
			Title:    t.Title,
			Assignee: assignee,
			Status:   string(t.Status),
			Priority: string(t.Priority),
			DueDate:  t.DueDate,
		})
	}
	return s.gen.GenerateTaskReport(data)
}
