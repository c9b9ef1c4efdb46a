package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZhongweiL/CSCI-39548-final-project-client/internal/models"
	"github.com/rs/zerolog"
)

// APIClient talks to the backend REST API that owns students and campuses.
type APIClient interface {
	GetAllStudents(ctx context.Context) ([]models.Student, error)
	GetStudent(ctx context.Context, id int) (*models.StudentDetail, error)
	UpdateStudent(ctx context.Context, student models.Student) (*models.Student, error)
	GetAllCampuses(ctx context.Context) ([]models.Campus, error)
	GetCampus(ctx context.Context, id int) (*models.CampusDetail, error)
	UpdateCampus(ctx context.Context, campus models.Campus) (*models.Campus, error)
}

type APIClientConfig struct {
	BaseURL          string
	StudentsEndpoint string
	CampusesEndpoint string
	Timeout          time.Duration
	RetryCount       int
	RetryDelay       time.Duration
	MaxIdleConns     int
	IdleConnTimeout  time.Duration
}

type apiClient struct {
	baseURL          string
	studentsEndpoint string
	campusesEndpoint string
	retryCount       int
	retryDelay       time.Duration
	client           *http.Client
	logger           zerolog.Logger
}

func NewAPIClient(cfg APIClientConfig, logger zerolog.Logger) APIClient {
	transport := &http.Transport{
		MaxIdleConns:    cfg.MaxIdleConns,
		IdleConnTimeout: cfg.IdleConnTimeout,
	}

	return &apiClient{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		studentsEndpoint: cfg.StudentsEndpoint,
		campusesEndpoint: cfg.CampusesEndpoint,
		retryCount:       cfg.RetryCount,
		retryDelay:       cfg.RetryDelay,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		logger: logger.With().Str("component", "api_client").Logger(),
	}
}

func (c *apiClient) GetAllStudents(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := c.do(ctx, http.MethodGet, c.studentsEndpoint, nil, &students); err != nil {
		return nil, fmt.Errorf("failed to fetch students: %w", err)
	}
	return students, nil
}

func (c *apiClient) GetStudent(ctx context.Context, id int) (*models.StudentDetail, error) {
	var student models.StudentDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", c.studentsEndpoint, id), nil, &student); err != nil {
		return nil, fmt.Errorf("failed to fetch student %d: %w", id, err)
	}
	return &student, nil
}

func (c *apiClient) UpdateStudent(ctx context.Context, student models.Student) (*models.Student, error) {
	var updated models.Student
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", c.studentsEndpoint, student.ID), student, &updated); err != nil {
		return nil, fmt.Errorf("failed to update student %d: %w", student.ID, err)
	}
	if updated.ID == 0 {
		// Some backends answer 200 with an empty body.
		updated = student
	}
	return &updated, nil
}

func (c *apiClient) GetAllCampuses(ctx context.Context) ([]models.Campus, error) {
	var campuses []models.Campus
	if err := c.do(ctx, http.MethodGet, c.campusesEndpoint, nil, &campuses); err != nil {
		return nil, fmt.Errorf("failed to fetch campuses: %w", err)
	}
	return campuses, nil
}

func (c *apiClient) GetCampus(ctx context.Context, id int) (*models.CampusDetail, error) {
	var campus models.CampusDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", c.campusesEndpoint, id), nil, &campus); err != nil {
		return nil, fmt.Errorf("failed to fetch campus %d: %w", id, err)
	}
	return &campus, nil
}

func (c *apiClient) UpdateCampus(ctx context.Context, campus models.Campus) (*models.Campus, error) {
	var updated models.Campus
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", c.campusesEndpoint, campus.ID), campus, &updated); err != nil {
		return nil, fmt.Errorf("failed to update campus %d: %w", campus.ID, err)
	}
	if updated.ID == 0 {
		updated = campus
	}
	return &updated, nil
}

// do performs one API call. Transport errors and 5xx responses are retried
// with linear backoff; 404 and other 4xx responses are returned immediately.
func (c *apiClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	url := c.baseURL + path

	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	var lastErr error
	for i := 0; i <= c.retryCount; i++ {
		if i > 0 {
			c.logger.Warn().
				Int("attempt", i).
				Str("method", method).
				Str("url", url).
				Msg("Retrying backend request")

			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", models.ErrUnavailable, ctx.Err())
			case <-time.After(c.retryDelay * time.Duration(i)):
			}
		}

		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		retry, err := c.handleResponse(resp, out)
		if !retry {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: %s %s failed after %d attempts: %v", models.ErrUnavailable, method, path, c.retryCount+1, lastErr)
}

func (c *apiClient) handleResponse(resp *http.Response, out interface{}) (retry bool, err error) {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return false, nil
		}
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return true, fmt.Errorf("failed to read response: %w", err)
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return false, nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return false, fmt.Errorf("%w: failed to decode response: %v", models.ErrRejected, err)
		}
		return false, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, models.ErrNotFound
	case resp.StatusCode >= 500:
		body, _ := io.ReadAll(resp.Body)
		return true, fmt.Errorf("backend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	default:
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("%w: status %d: %s", models.ErrRejected, resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
