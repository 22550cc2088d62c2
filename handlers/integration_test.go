package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ruedo-cms/authz"
	"ruedo-cms/config"
	"ruedo-cms/handlers"
	"ruedo-cms/models"
	"ruedo-cms/repositories"
)

const testPassword = "password123"

type envelope struct {
	Code        int             `json:"code"`
	CodeType    string          `json:"code_type"`
	CodeMessage json.RawMessage `json:"code_message"`
	Data        json.RawMessage `json:"data"`
}

func (e envelope) message() string {
	var msg string
	_ = json.Unmarshal(e.CodeMessage, &msg)
	return msg
}

type listData[T any] struct {
	Results    []T `json:"results"`
	Pagination struct {
		TotalRecords int `json:"total_records"`
		CurrentPage  int `json:"current_page"`
	} `json:"pagination"`
}

type IntegrationTestSuite struct {
	suite.Suite
	db        *gorm.DB
	blacklist repositories.TokenBlacklistRepository
	router    *gin.Engine
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func (suite *IntegrationTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := config.OpenSQLite(uuid.NewString())
	suite.Require().NoError(err)
	suite.db = db

	blacklist, err := repositories.NewTokenBlacklistRepository("")
	suite.Require().NoError(err)
	suite.blacklist = blacklist

	engine, err := authz.NewDefaultEngine()
	suite.Require().NoError(err)

	cfg := &config.Config{
		JWTSecret:             "test-secret",
		AccessTokenLifetimeM:  60,
		RefreshTokenLifetimeD: 7,
		PageSize:              20,
		LoginRateLimit:        100,
		LoginRateBurst:        100,
	}
	router, err := handlers.NewRouter(handlers.Dependencies{Config: cfg, DB: db, Blacklist: blacklist, Engine: engine})
	suite.Require().NoError(err)
	suite.router = router
}

func (suite *IntegrationTestSuite) TearDownTest() {
	suite.blacklist.Close()
	if sqlDB, err := suite.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (suite *IntegrationTestSuite) createUser(email string, role models.UserRole, active bool) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	suite.Require().NoError(err)

	user := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Test",
		LastName:  string(role),
		Role:      role,
		IsActive:  true,
		Interests: []string{},
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	if !active {
		suite.Require().NoError(suite.db.Model(user).Update("is_active", false).Error)
		user.IsActive = false
	}
	return user
}

func (suite *IntegrationTestSuite) request(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		suite.Require().NoError(json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) decode(w *httptest.ResponseRecorder, data interface{}) envelope {
	var env envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil {
		suite.Require().NoError(json.Unmarshal(env.Data, data))
	}
	return env
}

func (suite *IntegrationTestSuite) loginPair(email string) models.TokenPair {
	w := suite.request("POST", "/api/auth/login/", "", models.LoginRequest{Email: email, Password: testPassword})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp models.LoginResponse
	suite.decode(w, &resp)
	return resp.TokenPair
}

func (suite *IntegrationTestSuite) login(email string) string {
	return suite.loginPair(email).Access
}

func (suite *IntegrationTestSuite) createCategory(name string) *models.Category {
	category := &models.Category{Name: name, Color: models.DefaultColor, Slug: uuid.NewString()[:8]}
	suite.Require().NoError(suite.db.Create(category).Error)
	return category
}

func (suite *IntegrationTestSuite) createEvent(token string, categoryID uint) models.EventDetail {
	w := suite.request("POST", "/api/eventos/", token, map[string]interface{}{
		"titulo":       "Noche de cuentos",
		"descripcion":  "Narración oral en la plaza",
		"categoria_id": categoryID,
		"fecha":        time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"lugar":        "Plaza central",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var event models.EventDetail
	suite.decode(w, &event)
	return event
}

func (suite *IntegrationTestSuite) createNews(token, title string, published bool) models.NewsDetail {
	w := suite.request("POST", "/api/noticias/", token, map[string]interface{}{
		"titulo":    title,
		"resumen":   "Resumen de la noticia",
		"publicada": published,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var article models.NewsDetail
	suite.decode(w, &article)
	return article
}

func (suite *IntegrationTestSuite) TestHealth() {
	w := suite.request("GET", "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *IntegrationTestSuite) TestRegisterIgnoresRequestedRole() {
	w := suite.request("POST", "/api/usuarios/registro/", "", map[string]interface{}{
		"correo":    "Nueva@Ruedo.co",
		"nombres":   "Ana",
		"apellidos": "Pérez",
		"password":  testPassword,
		"password2": testPassword,
		"rol":       "ADMIN",
	})
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	var profile models.Profile
	suite.decode(w, &profile)
	suite.Equal(models.RoleRegular, profile.Role)
	suite.Equal("nueva@ruedo.co", profile.Email)
	suite.True(profile.IsActive)

	var stored models.User
	suite.Require().NoError(suite.db.First(&stored, profile.ID).Error)
	suite.Equal(models.RoleRegular, stored.Role)
}

func (suite *IntegrationTestSuite) TestRegisterValidation() {
	w := suite.request("POST", "/api/usuarios/registro/", "", map[string]interface{}{
		"correo":    "otra@ruedo.co",
		"nombres":   "Ana",
		"apellidos": "Pérez",
		"password":  testPassword,
		"password2": "different123",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request("POST", "/api/usuarios/registro/", "", map[string]interface{}{
		"correo":   "no-es-correo",
		"password": "corta",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	env := suite.decode(w, nil)

	var fields map[string][]string
	suite.Require().NoError(json.Unmarshal(env.CodeMessage, &fields))
	suite.Contains(fields, "correo")
	suite.Contains(fields, "password")
}

func (suite *IntegrationTestSuite) TestRegisterDuplicateEmail() {
	suite.createUser("dup@ruedo.co", models.RoleRegular, true)

	w := suite.request("POST", "/api/usuarios/registro/", "", map[string]interface{}{
		"correo":    "DUP@ruedo.co",
		"nombres":   "Ana",
		"apellidos": "Pérez",
		"password":  testPassword,
		"password2": testPassword,
	})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *IntegrationTestSuite) TestLoginAndProfile() {
	suite.createUser("lector@ruedo.co", models.RoleRegular, true)

	w := suite.request("POST", "/api/auth/login/", "", models.LoginRequest{Email: "lector@ruedo.co", Password: testPassword})
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp models.LoginResponse
	suite.decode(w, &resp)
	suite.NotEmpty(resp.Access)
	suite.NotEmpty(resp.Refresh)
	suite.Equal("lector@ruedo.co", resp.User.Email)
	suite.NotNil(resp.User.LastLogin)

	w = suite.request("GET", "/api/usuarios/perfil/", resp.Access, nil)
	suite.Equal(http.StatusOK, w.Code)

	var profile models.Profile
	suite.decode(w, &profile)
	suite.Equal("lector@ruedo.co", profile.Email)
}

func (suite *IntegrationTestSuite) TestLoginRejectsBadCredentials() {
	suite.createUser("lector@ruedo.co", models.RoleRegular, true)
	suite.createUser("dormido@ruedo.co", models.RoleRegular, false)

	w := suite.request("POST", "/api/auth/login/", "", models.LoginRequest{Email: "lector@ruedo.co", Password: "wrong-password"})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(models.MsgInvalidCredentials, suite.decode(w, nil).message())

	w = suite.request("POST", "/api/auth/login/", "", models.LoginRequest{Email: "dormido@ruedo.co", Password: testPassword})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(models.MsgInvalidCredentials, suite.decode(w, nil).message())
}

func (suite *IntegrationTestSuite) TestInactivePrincipalIsForbidden() {
	user := suite.createUser("lector@ruedo.co", models.RoleCreator, true)
	token := suite.login(user.Email)

	suite.Require().NoError(suite.db.Model(user).Update("is_active", false).Error)

	w := suite.request("GET", "/api/eventos/", token, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal(models.MsgInactiveAccount, suite.decode(w, nil).message())
}

func (suite *IntegrationTestSuite) TestMalformedTokenRejected() {
	w := suite.request("GET", "/api/eventos/", "not-a-token", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestRefreshRotationAndLogout() {
	suite.createUser("lector@ruedo.co", models.RoleRegular, true)
	pair := suite.loginPair("lector@ruedo.co")

	w := suite.request("POST", "/api/auth/refresh/", "", models.RefreshRequest{Refresh: pair.Refresh})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var rotated models.TokenPair
	suite.decode(w, &rotated)
	suite.NotEqual(pair.Refresh, rotated.Refresh)

	// the used refresh token is spent
	w = suite.request("POST", "/api/auth/refresh/", "", models.RefreshRequest{Refresh: pair.Refresh})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request("POST", "/api/auth/logout/", "", models.RefreshRequest{Refresh: rotated.Refresh})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("POST", "/api/auth/refresh/", "", models.RefreshRequest{Refresh: rotated.Refresh})
	suite.Equal(http.StatusUnauthorized, w.Code)

	// an access token is not a refresh token
	w = suite.request("POST", "/api/auth/refresh/", "", models.RefreshRequest{Refresh: rotated.Access})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestChangePassword() {
	suite.createUser("lector@ruedo.co", models.RoleRegular, true)
	token := suite.login("lector@ruedo.co")

	w := suite.request("POST", "/api/usuarios/cambiar-password/", token, map[string]string{
		"password_actual": "wrong-password",
		"password_nuevo":  "nueva-clave-1",
		"password_nuevo2": "nueva-clave-1",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request("POST", "/api/usuarios/cambiar-password/", token, map[string]string{
		"password_actual": testPassword,
		"password_nuevo":  "nueva-clave-1",
		"password_nuevo2": "nueva-clave-1",
	})
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request("POST", "/api/auth/login/", "", models.LoginRequest{Email: "lector@ruedo.co", Password: "nueva-clave-1"})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *IntegrationTestSuite) TestAnonymousWritesNeedAuthentication() {
	for _, path := range []string{"/api/noticias/", "/api/eventos/", "/api/entrevistas/", "/api/eventos/categorias/"} {
		w := suite.request("POST", path, "", map[string]string{})
		suite.Equal(http.StatusUnauthorized, w.Code, path)
		suite.Equal(models.MsgAuthenticationRequired, suite.decode(w, nil).message(), path)
	}

	w := suite.request("GET", "/api/usuarios/perfil/", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestRegularUserCannotCreateContent() {
	suite.createUser("lector@ruedo.co", models.RoleRegular, true)
	token := suite.login("lector@ruedo.co")

	w := suite.request("POST", "/api/noticias/", token, map[string]interface{}{
		"titulo":  "Intento",
		"resumen": "No debería crearse",
	})
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal(models.MsgCreatorOnly, suite.decode(w, nil).message())

	w = suite.request("POST", "/api/eventos/categorias/", token, map[string]string{"nombre": "Teatro"})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *IntegrationTestSuite) TestCategoryLifecycle() {
	suite.createUser("cuentero@ruedo.co", models.RoleCreator, true)
	token := suite.login("cuentero@ruedo.co")

	w := suite.request("POST", "/api/eventos/categorias/", token, map[string]string{"nombre": "Narración Oral"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var category models.Category
	suite.decode(w, &category)
	suite.Equal("narracion-oral", category.Slug)
	suite.Equal(models.DefaultColor, category.Color)

	w = suite.request("POST", "/api/eventos/categorias/", token, map[string]string{"nombre": "Narración Oral"})
	suite.Equal(http.StatusConflict, w.Code)

	event := suite.createEvent(token, category.ID)

	w = suite.request("DELETE", "/api/eventos/categorias/narracion-oral/", token, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.request("GET", fmt.Sprintf("/api/eventos/%d/", event.ID), "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var detail models.EventDetail
	suite.decode(w, &detail)
	suite.Nil(detail.Category)
}

func (suite *IntegrationTestSuite) TestEventOwnership() {
	suite.createUser("a@ruedo.co", models.RoleCreator, true)
	suite.createUser("b@ruedo.co", models.RoleCreator, true)
	suite.createUser("admin@ruedo.co", models.RoleAdmin, true)
	category := suite.createCategory("Teatro")

	tokenA := suite.login("a@ruedo.co")
	tokenB := suite.login("b@ruedo.co")
	tokenAdmin := suite.login("admin@ruedo.co")

	event := suite.createEvent(tokenA, category.ID)
	suite.True(event.Open)
	suite.True(event.Free)
	suite.Equal(models.DefaultCity, event.City)
	path := fmt.Sprintf("/api/eventos/%d/", event.ID)

	w := suite.request("PATCH", path, tokenB, map[string]string{"titulo": "Robado"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request("DELETE", path, tokenB, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request("PATCH", path, tokenA, map[string]string{"titulo": "Noche de cuentos II"})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("DELETE", path, tokenAdmin, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.request("GET", path, "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestEventListFilters() {
	suite.createUser("a@ruedo.co", models.RoleCreator, true)
	token := suite.login("a@ruedo.co")
	teatro := suite.createCategory("Teatro")
	musica := suite.createCategory("Música")

	suite.createEvent(token, teatro.ID)
	suite.createEvent(token, teatro.ID)
	suite.createEvent(token, musica.ID)

	w := suite.request("GET", "/api/eventos/?categoria="+teatro.Slug, "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page listData[models.EventSummary]
	suite.decode(w, &page)
	suite.Len(page.Results, 2)
	suite.Equal(2, page.Pagination.TotalRecords)

	w = suite.request("GET", "/api/eventos/?destacado=true", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	page = listData[models.EventSummary]{}
	suite.decode(w, &page)
	suite.Empty(page.Results)

	w = suite.request("GET", "/api/eventos/?gratuito=quizas", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request("GET", "/api/eventos/?page=0", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *IntegrationTestSuite) TestDuplicateSavedEvent() {
	suite.createUser("a@ruedo.co", models.RoleCreator, true)
	suite.createUser("lector@ruedo.co", models.RoleRegular, true)
	suite.createUser("otro@ruedo.co", models.RoleRegular, true)
	category := suite.createCategory("Teatro")
	event := suite.createEvent(suite.login("a@ruedo.co"), category.ID)

	token := suite.login("lector@ruedo.co")
	w := suite.request("POST", "/api/usuarios/mis-eventos/", token, map[string]interface{}{"evento_id": event.ID})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var saved models.SavedEventView
	suite.decode(w, &saved)
	suite.Equal(models.StatusSaved, saved.Status)

	w = suite.request("POST", "/api/usuarios/mis-eventos/", token, map[string]interface{}{"evento_id": event.ID})
	suite.Equal(http.StatusConflict, w.Code)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.SavedEvent{}).Where("event_id = ?", event.ID).Count(&count).Error)
	suite.Equal(int64(1), count)

	w = suite.request("POST", "/api/usuarios/mis-eventos/", token, map[string]interface{}{"evento_id": 9999})
	suite.Equal(http.StatusBadRequest, w.Code)

	// other users neither see nor touch it
	other := suite.login("otro@ruedo.co")
	path := fmt.Sprintf("/api/usuarios/mis-eventos/%d/", saved.ID)
	suite.Equal(http.StatusNotFound, suite.request("GET", path, other, nil).Code)
	suite.Equal(http.StatusNotFound, suite.request("DELETE", path, other, nil).Code)

	w = suite.request("GET", "/api/usuarios/mis-eventos/", other, nil)
	var otherPage listData[models.SavedEventView]
	suite.decode(w, &otherPage)
	suite.Empty(otherPage.Results)

	w = suite.request("PATCH", path, token, map[string]string{"estado": "ASISTIDO"})
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &saved)
	suite.Equal(models.StatusAttended, saved.Status)
}

func (suite *IntegrationTestSuite) TestProfileUpdateKeepsRole() {
	user := suite.createUser("lector@ruedo.co", models.RoleRegular, true)
	token := suite.login(user.Email)

	w := suite.request("PATCH", "/api/usuarios/perfil/", token, map[string]interface{}{
		"rol":       "ADMIN",
		"is_active": false,
		"ciudad":    "Medellín",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var profile models.Profile
	suite.decode(w, &profile)
	suite.Equal(models.RoleRegular, profile.Role)
	suite.Equal("Medellín", profile.City)
	suite.True(profile.IsActive)

	var stored models.User
	suite.Require().NoError(suite.db.First(&stored, user.ID).Error)
	suite.Equal(models.RoleRegular, stored.Role)
	suite.Equal("Medellín", stored.City)
}

func (suite *IntegrationTestSuite) TestAdminManagesUsers() {
	regular := suite.createUser("lector@ruedo.co", models.RoleRegular, true)
	suite.createUser("admin@ruedo.co", models.RoleAdmin, true)
	regularToken := suite.login(regular.Email)
	adminToken := suite.login("admin@ruedo.co")

	w := suite.request("GET", "/api/usuarios/", regularToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request("GET", "/api/usuarios/", adminToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page listData[models.Profile]
	suite.decode(w, &page)
	suite.Len(page.Results, 2)

	userPath := fmt.Sprintf("/api/usuarios/%d/", regular.ID)
	suite.Equal(http.StatusForbidden, suite.request("GET", fmt.Sprintf("/api/usuarios/%d/", regular.ID+100), regularToken, nil).Code)

	w = suite.request("PATCH", userPath, adminToken, map[string]string{"rol": "CUENTERO"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var profile models.Profile
	suite.decode(w, &profile)
	suite.Equal(models.RoleCreator, profile.Role)
	suite.True(profile.IsCreatorClass)

	// the promotion applies to the token issued before it
	w = suite.request("POST", "/api/noticias/", regularToken, map[string]interface{}{
		"titulo":  "Primera crónica",
		"resumen": "Ya soy cuentero",
	})
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.request("PATCH", userPath, adminToken, map[string]string{"rol": "REY"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *IntegrationTestSuite) TestDeletedUserLeavesOrphanedEvents() {
	creator := suite.createUser("a@ruedo.co", models.RoleCreator, true)
	suite.createUser("b@ruedo.co", models.RoleCreator, true)
	suite.createUser("admin@ruedo.co", models.RoleAdmin, true)
	category := suite.createCategory("Teatro")
	event := suite.createEvent(suite.login(creator.Email), category.ID)
	adminToken := suite.login("admin@ruedo.co")

	w := suite.request("DELETE", fmt.Sprintf("/api/usuarios/%d/", creator.ID), adminToken, nil)
	suite.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())

	var stored models.Event
	suite.Require().NoError(suite.db.First(&stored, event.ID).Error)
	suite.Nil(stored.CreatorID)

	path := fmt.Sprintf("/api/eventos/%d/", event.ID)
	w = suite.request("PATCH", path, suite.login("b@ruedo.co"), map[string]string{"titulo": "Adoptado"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request("PATCH", path, adminToken, map[string]string{"titulo": "Rescatado"})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *IntegrationTestSuite) TestInterviewVisibility() {
	creator := suite.createUser("a@ruedo.co", models.RoleCreator, true)
	suite.createUser("lector@ruedo.co", models.RoleRegular, true)
	today := time.Now()
	suite.Require().NoError(suite.db.Create(&models.Interview{
		Interviewee: "Maestra", IntervieweeRole: "Narradora", Title: "Publicada", Slug: "publicada",
		Summary: "r", Description: "d", Category: models.InterviewMasters, CategoryColor: models.DefaultColor,
		Published: true, CreatorID: &creator.ID, PublishedOn: &today,
	}).Error)
	suite.Require().NoError(suite.db.Create(&models.Interview{
		Interviewee: "Aprendiz", IntervieweeRole: "Narrador", Title: "Borrador", Slug: "borrador",
		Summary: "r", Description: "d", Category: models.InterviewNewVoices, CategoryColor: models.DefaultColor,
		CreatorID: &creator.ID,
	}).Error)

	var page listData[models.InterviewSummary]
	w := suite.request("GET", "/api/entrevistas/", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &page)
	suite.Len(page.Results, 1)
	suite.Equal("publicada", page.Results[0].Slug)

	page = listData[models.InterviewSummary]{}
	suite.decode(suite.request("GET", "/api/entrevistas/", suite.login("lector@ruedo.co"), nil), &page)
	suite.Len(page.Results, 1)

	page = listData[models.InterviewSummary]{}
	suite.decode(suite.request("GET", "/api/entrevistas/", suite.login(creator.Email), nil), &page)
	suite.Len(page.Results, 2)

	hidden := suite.request("GET", "/api/entrevistas/borrador/", "", nil)
	missing := suite.request("GET", "/api/entrevistas/no-existe/", "", nil)
	suite.Equal(http.StatusNotFound, hidden.Code)
	suite.Equal(missing.Code, hidden.Code)
	suite.Equal(missing.Body.String(), hidden.Body.String())
}

func (suite *IntegrationTestSuite) TestUnpublishedNewsLooksMissing() {
	suite.createUser("a@ruedo.co", models.RoleCreator, true)
	token := suite.login("a@ruedo.co")
	article := suite.createNews(token, "Crónica secreta", false)
	suite.Equal("cronica-secreta", article.Slug)
	suite.Nil(article.PublishedOn)

	hidden := suite.request("GET", "/api/noticias/cronica-secreta/", "", nil)
	missing := suite.request("GET", "/api/noticias/no-existe/", "", nil)
	suite.Equal(http.StatusNotFound, hidden.Code)
	suite.Equal(missing.Body.String(), hidden.Body.String())

	suite.Equal(http.StatusOK, suite.request("GET", "/api/noticias/cronica-secreta/", token, nil).Code)

	w := suite.request("PATCH", "/api/noticias/cronica-secreta/", token, map[string]bool{"publicada": true})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.decode(w, &article)
	suite.NotNil(article.PublishedOn)

	suite.Equal(http.StatusOK, suite.request("GET", "/api/noticias/cronica-secreta/", "", nil).Code)

	w = suite.request("POST", "/api/noticias/", token, map[string]interface{}{
		"titulo":  "Otra",
		"slug":    "cronica-secreta",
		"resumen": "Mismo slug",
	})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *IntegrationTestSuite) TestContentBlocks() {
	suite.createUser("a@ruedo.co", models.RoleCreator, true)
	suite.createUser("b@ruedo.co", models.RoleCreator, true)
	token := suite.login("a@ruedo.co")
	article := suite.createNews(token, "Con bloques", true)
	blocksPath := "/api/noticias/" + article.Slug + "/bloques/"

	w := suite.request("POST", blocksPath, token, map[string]interface{}{"tipo": "cita", "autor": "Anónimo"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request("POST", blocksPath, token, map[string]interface{}{"tipo": "imagen", "pie": "Sin imagen"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request("POST", blocksPath, token, map[string]interface{}{"tipo": "video", "texto": "x"})
	suite.Equal(http.StatusBadRequest, w.Code)

	for _, block := range []map[string]interface{}{
		{"tipo": "parrafo", "orden": 2, "texto": "<p>tercero</p><script>alert(1)</script>"},
		{"tipo": "subtitulo", "orden": 0, "texto": "primero"},
		{"tipo": "imagen", "orden": 1, "src": "https://cdn.ruedo.co/a.jpg", "pie": "segundo"},
	} {
		w = suite.request("POST", blocksPath, token, block)
		suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	w = suite.request("POST", blocksPath, suite.login("b@ruedo.co"), map[string]interface{}{"tipo": "parrafo", "texto": "intruso"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request("GET", "/api/noticias/"+article.Slug+"/", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var detail struct {
		Blocks []struct {
			ID    uint   `json:"id"`
			Type  string `json:"tipo"`
			Order int    `json:"orden"`
			Text  string `json:"texto"`
		} `json:"bloques"`
	}
	suite.decode(w, &detail)
	suite.Require().Len(detail.Blocks, 3)
	suite.Equal("subtitulo", detail.Blocks[0].Type)
	suite.Equal("imagen", detail.Blocks[1].Type)
	suite.Equal("parrafo", detail.Blocks[2].Type)
	suite.NotContains(detail.Blocks[2].Text, "<script>")

	paragraphPath := fmt.Sprintf("%s%d/", blocksPath, detail.Blocks[2].ID)
	w = suite.request("PUT", paragraphPath, token, map[string]interface{}{"tipo": "cita", "texto": "dicho", "autor": "Abuela"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request("DELETE", paragraphPath, token, nil)
	suite.Equal(http.StatusNoContent, w.Code)
	suite.Equal(http.StatusNotFound, suite.request("GET", paragraphPath, token, nil).Code)
}
