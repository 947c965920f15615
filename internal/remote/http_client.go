package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rowanherne/morrow/internal/models"
)

const defaultRequestTimeout = 15 * time.Second

// HTTPClient implements Client against the morrow sync API using a bearer
// token obtained at sign-in.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPClient(baseURL string, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}
}

type checkInWithPlanPayload struct {
	CheckIn models.CheckIn      `json:"check_in"`
	Plan    models.RecoveryPlan `json:"plan"`
}

type completionPayload struct {
	StepsCompleted int `json:"steps_completed"`
	TotalSteps     int `json:"total_steps"`
}

type summariesResponse struct {
	Summaries []models.DaySummary `json:"summaries"`
}

type apiErrorBody struct {
	Error string `json:"error"`
}

func (client *HTTPClient) FetchDay(ctx context.Context, dayID string) (DayRecord, bool, error) {
	record := DayRecord{}
	status, err := client.do(ctx, http.MethodGet, "/api/days/"+url.PathEscape(dayID), nil, &record)
	if err != nil {
		return DayRecord{}, false, err
	}
	if status == http.StatusNotFound {
		return DayRecord{}, false, nil
	}
	return record, true, nil
}

func (client *HTTPClient) SaveCheckInWithPlan(ctx context.Context, checkIn models.CheckIn, plan models.RecoveryPlan) error {
	payload := checkInWithPlanPayload{CheckIn: checkIn, Plan: plan}
	path := "/api/days/" + url.PathEscape(checkIn.DayID) + "/checkin"
	_, err := client.do(ctx, http.MethodPut, path, payload, nil)
	return err
}

func (client *HTTPClient) SaveCompletion(ctx context.Context, dayID string, stepsCompleted int, totalSteps int) error {
	payload := completionPayload{StepsCompleted: stepsCompleted, TotalSteps: totalSteps}
	path := "/api/days/" + url.PathEscape(dayID) + "/completion"
	_, err := client.do(ctx, http.MethodPut, path, payload, nil)
	return err
}

func (client *HTTPClient) FetchDaySummaries(ctx context.Context, lastDays int) ([]models.DaySummary, error) {
	response := summariesResponse{}
	path := "/api/summaries?days=" + strconv.Itoa(lastDays)
	if _, err := client.do(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, err
	}
	if response.Summaries == nil {
		return []models.DaySummary{}, nil
	}
	return response.Summaries, nil
}

// do runs one request. A 404 is reported through the returned status, not as
// an error; every other non-2xx status becomes an error.
func (client *HTTPClient) do(ctx context.Context, method string, path string, payload any, target any) (int, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Authorization", "Bearer "+client.token)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.client.Do(request)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return http.StatusNotFound, nil
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return response.StatusCode, fmt.Errorf("%s %s: %s", method, path, remoteErrorMessage(response))
	}

	if target != nil {
		if err := json.NewDecoder(response.Body).Decode(target); err != nil {
			return response.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return response.StatusCode, nil
}

func remoteErrorMessage(response *http.Response) string {
	errorBody := apiErrorBody{}
	if err := json.NewDecoder(io.LimitReader(response.Body, 4096)).Decode(&errorBody); err == nil && errorBody.Error != "" {
		return fmt.Sprintf("%s (status %d)", errorBody.Error, response.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d", response.StatusCode)
}
