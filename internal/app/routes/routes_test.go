package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/vdab/fietsen/internal/app/controllers"
	"github.com/vdab/fietsen/internal/app/models/dto"
	"github.com/vdab/fietsen/internal/app/repositories/memory"
	"github.com/vdab/fietsen/internal/app/services"
	"github.com/vdab/fietsen/internal/pkg/metrics"
)

type RouterSuite struct {
	suite.Suite
	router *gin.Engine
}

func TestRouterSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	svc := services.NewServices(memory.NewRepositories(), metrics.New())
	s.router = gin.New()
	SetupRouter(s.router, Controllers{
		Instructor:     controllers.NewInstructorController(svc.InstructorService),
		Campus:         controllers.NewCampusController(svc.CampusService),
		Responsibility: controllers.NewResponsibilityController(svc.ResponsibilityService),
		Course:         controllers.NewCourseController(svc.CourseService),
	})
}

// do sends a request and decodes the data of the envelope into out when out is not nil
func (s *RouterSuite) do(method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		envelope := struct {
			Data json.RawMessage `json:"data"`
		}{}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
		s.Require().NoError(json.Unmarshal(envelope.Data, out))
	}
	return rec
}

func (s *RouterSuite) errorCode(rec *httptest.ResponseRecorder) dto.ErrorCode {
	var body dto.APIResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().NotNil(body.Error)
	return body.Error.Code
}

func (s *RouterSuite) createCampus() dto.CampusResponse {
	var campus dto.CampusResponse
	rec := s.do(http.MethodPost, "/api/v1/campuses", map[string]interface{}{
		"name": "HQ",
		"address": map[string]string{
			"street": "Main", "houseNumber": "1", "postalCode": "1000", "municipality": "City",
		},
	}, &campus)
	s.Require().Equal(http.StatusCreated, rec.Code)
	return campus
}

func (s *RouterSuite) createInstructor(campusID int64, email, salary string) dto.InstructorResponse {
	var instructor dto.InstructorResponse
	rec := s.do(http.MethodPost, "/api/v1/instructors", map[string]interface{}{
		"firstName": "Jo",
		"lastName":  "Doe",
		"salary":    salary,
		"email":     email,
		"gender":    "MAN",
		"campusId":  campusID,
	}, &instructor)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return instructor
}

func (s *RouterSuite) TestPing() {
	rec := s.do(http.MethodGet, "/ping", nil, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "pong")
}

func (s *RouterSuite) TestEndToEnd() {
	campus := s.createCampus()
	instructor := s.createInstructor(campus.ID, "jo@x.be", "1000.00")
	s.Equal("1000.00", instructor.Salary)

	var safety dto.ResponsibilityResponse
	rec := s.do(http.MethodPost, "/api/v1/responsibilities", map[string]string{"name": "Safety"}, &safety)
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPut, fmt.Sprintf("/api/v1/instructors/%d/responsibilities/%d", instructor.ID, safety.ID), nil, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var found dto.InstructorResponse
	rec = s.do(http.MethodGet, fmt.Sprintf("/api/v1/instructors/%d", instructor.ID), nil, &found)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Len(found.Responsibilities, 1)
	s.Equal("Safety", found.Responsibilities[0].Name)
	s.Equal("HQ", found.Campus.Name)

	var counts []dto.CountPerSalaryResponse
	rec = s.do(http.MethodGet, "/api/v1/instructors/stats/per-salary", nil, &counts)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal([]dto.CountPerSalaryResponse{{Salary: "1000.00", Count: 1}}, counts)
}

func (s *RouterSuite) TestRaiseSalary() {
	campus := s.createCampus()
	instructor := s.createInstructor(campus.ID, "jo@x.be", "1000.00")

	var raised dto.InstructorResponse
	rec := s.do(http.MethodPost, fmt.Sprintf("/api/v1/instructors/%d/raise", instructor.ID),
		map[string]string{"percentage": "10"}, &raised)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("1100.00", raised.Salary)

	rec = s.do(http.MethodPost, "/api/v1/instructors/999/raise", map[string]string{"percentage": "10"}, nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(dto.ErrorCodeResourceNotFound, s.errorCode(rec))

	rec = s.do(http.MethodPost, fmt.Sprintf("/api/v1/instructors/%d/raise", instructor.ID), map[string]string{}, nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, fmt.Sprintf("/api/v1/instructors/%d/raise", instructor.ID),
		map[string]string{"percentage": "100000000"}, nil)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *RouterSuite) TestBulkRaiseAndAggregates() {
	rec := s.do(http.MethodGet, "/api/v1/instructors/stats/max-salary", nil, nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(dto.ErrorCodeNoInstructors, s.errorCode(rec))

	campus := s.createCampus()
	s.createInstructor(campus.ID, "a@x.be", "1000.00")
	s.createInstructor(campus.ID, "b@x.be", "1000.00")

	var count dto.CountResponse
	rec = s.do(http.MethodPost, "/api/v1/instructors/raise", map[string]string{"percentage": "10"}, &count)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.EqualValues(2, count.Updated)

	var highest dto.MaxSalaryResponse
	rec = s.do(http.MethodGet, "/api/v1/instructors/stats/max-salary", nil, &highest)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("1100.00", highest.Salary)

	var emails []string
	rec = s.do(http.MethodGet, "/api/v1/instructors/emails", nil, &emails)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal([]string{"a@x.be", "b@x.be"}, emails)

	var pairs []dto.IDAndEmailResponse
	rec = s.do(http.MethodGet, "/api/v1/instructors/id-emails", nil, &pairs)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(pairs, 2)
}

func (s *RouterSuite) TestSalaryRange() {
	campus := s.createCampus()
	s.createInstructor(campus.ID, "a@x.be", "999.99")
	s.createInstructor(campus.ID, "b@x.be", "1000.00")
	s.createInstructor(campus.ID, "c@x.be", "2000.00")

	var found []dto.InstructorResponse
	rec := s.do(http.MethodGet, "/api/v1/instructors/salary-range?from=1000&to=2000", nil, &found)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Len(found, 2)
	s.Equal("HQ", found[0].Campus.Name)

	rec = s.do(http.MethodGet, "/api/v1/instructors/salary-range?from=999.99&to=999.99", nil, &found)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Len(found, 1)
	s.Equal("a@x.be", found[0].Email)

	rec = s.do(http.MethodGet, "/api/v1/instructors/salary-range?from=abc&to=2000", nil, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestListAndDelete() {
	campus := s.createCampus()
	instructor := s.createInstructor(campus.ID, "a@x.be", "1000.00")

	var all []dto.InstructorResponse
	rec := s.do(http.MethodGet, "/api/v1/instructors", nil, &all)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Len(all, 1)
	s.Equal("HQ", all[0].Campus.Name)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/instructors/%d", instructor.ID), nil, nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/instructors/%d", instructor.ID), nil, nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/v1/instructors/%d", instructor.ID), nil, nil)
	s.Equal(http.StatusNotFound, rec.Code)

	var loaded dto.CampusResponse
	rec = s.do(http.MethodGet, fmt.Sprintf("/api/v1/campuses/%d", campus.ID), nil, &loaded)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Empty(loaded.Instructors)
}

func (s *RouterSuite) TestNicknames() {
	campus := s.createCampus()
	instructor := s.createInstructor(campus.ID, "a@x.be", "1000.00")
	path := fmt.Sprintf("/api/v1/instructors/%d/nicknames/Jojo", instructor.ID)

	var updated dto.InstructorResponse
	rec := s.do(http.MethodPost, path, nil, &updated)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal([]string{"Jojo"}, updated.Nicknames)

	rec = s.do(http.MethodDelete, path, nil, &updated)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Empty(updated.Nicknames)
}

func (s *RouterSuite) TestValidation() {
	s.Run("invalid id", func() {
		rec := s.do(http.MethodGet, "/api/v1/instructors/abc", nil, nil)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal(dto.ErrorCodeInvalidID, s.errorCode(rec))
	})

	s.Run("missing fields are reported per field", func() {
		rec := s.do(http.MethodPost, "/api/v1/instructors", map[string]string{"firstName": "Jo"}, nil)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "LastName is required")
	})

	s.Run("unknown gender", func() {
		campus := s.createCampus()
		rec := s.do(http.MethodPost, "/api/v1/instructors", map[string]interface{}{
			"firstName": "Jo", "lastName": "Doe", "salary": "1", "email": "jo@x.be",
			"gender": "OTHER", "campusId": campus.ID,
		}, nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("negative salary", func() {
		campus := s.createCampus()
		rec := s.do(http.MethodPost, "/api/v1/instructors", map[string]interface{}{
			"firstName": "Jo", "lastName": "Doe", "salary": "-1", "email": "jo@x.be",
			"gender": "MAN", "campusId": campus.ID,
		}, nil)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "Salary cannot be negative")
	})

	s.Run("blank first name", func() {
		campus := s.createCampus()
		rec := s.do(http.MethodPost, "/api/v1/instructors", map[string]interface{}{
			"firstName": "  ", "lastName": "Doe", "salary": "1", "email": "jo@x.be",
			"gender": "MAN", "campusId": campus.ID,
		}, nil)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "FirstName cannot be blank")
	})

	s.Run("unknown campus", func() {
		rec := s.do(http.MethodPost, "/api/v1/instructors", map[string]interface{}{
			"firstName": "Jo", "lastName": "Doe", "salary": "1", "email": "jo@x.be",
			"gender": "MAN", "campusId": 999,
		}, nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *RouterSuite) TestResponsibilities() {
	var created dto.ResponsibilityResponse
	rec := s.do(http.MethodPost, "/api/v1/responsibilities", map[string]string{"name": "Safety"}, &created)
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/responsibilities", map[string]string{"name": "SAFETY"}, nil)
	s.Equal(http.StatusConflict, rec.Code)

	var found dto.ResponsibilityResponse
	rec = s.do(http.MethodGet, "/api/v1/responsibilities?name=safety", nil, &found)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(created.ID, found.ID)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/v1/responsibilities/%d", created.ID), nil, &found)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("Safety", found.Name)
}

func (s *RouterSuite) TestCourses() {
	rec := s.do(http.MethodPost, "/api/v1/courses", map[string]string{"name": "Wiskunde"}, nil)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var group dto.GroupCourseResponse
	rec = s.do(http.MethodPost, "/api/v1/courses/groups", map[string]string{
		"name": "Boekhouden", "from": "2024-09-01", "to": "2024-12-20",
	}, &group)
	s.Require().Equal(http.StatusCreated, rec.Code)
	s.Equal("2024-09-01", group.From)

	rec = s.do(http.MethodPost, "/api/v1/courses/groups", map[string]string{
		"name": "Terug", "from": "2024-09-01", "to": "2024-08-01",
	}, nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/courses/groups", map[string]string{
		"name": "Slecht", "from": "01/09/2024", "to": "2024-08-01",
	}, nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	var courses []dto.CourseResponse
	rec = s.do(http.MethodGet, "/api/v1/courses", nil, &courses)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(courses, 2)
}
