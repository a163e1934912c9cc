package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	config "github.com/curerise/curerise-backend-go/config"
	middleware "github.com/curerise/curerise-backend-go/middleware"
	utils "github.com/curerise/curerise-backend-go/utils"
)

func serveVerify(mt *mtest.T, cfg *config.Config, token string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/api/admin/patients/:id/verify",
		middleware.AuthMiddleware(cfg),
		middleware.AdminRequired(cfg),
		VerifyPatient(cfg))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/admin/patients/pat-1/verify", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyPatientRejectsNonAdmin(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("non-admin caller", func(mt *mtest.T) {
		cfg := mockConfig(mt)
		token, err := utils.IssueToken(cfg.JWTSecret, "usr-1", time.Hour)
		require.NoError(mt, err)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "curerise.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "public_id", Value: "usr-1"},
				{Key: "email", Value: "demo@curerise.com"},
				{Key: "name", Value: "Demo User"},
				{Key: "is_admin", Value: false},
				{Key: "is_active", Value: true},
			}))

		w := serveVerify(mt, cfg, token)

		assert.Equal(mt, http.StatusForbidden, w.Code)
		assert.Contains(mt, w.Body.String(), "Admin access required")

		// the gate must abort before the handler issues any write
		cmds := startedCommands(mt)
		assert.Empty(mt, cmds["update"])
	})

	mt.Run("token whose user record vanished", func(mt *mtest.T) {
		cfg := mockConfig(mt)
		token, err := utils.IssueToken(cfg.JWTSecret, "usr-gone", time.Hour)
		require.NoError(mt, err)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "curerise.users", mtest.FirstBatch))

		w := serveVerify(mt, cfg, token)

		assert.Equal(mt, http.StatusForbidden, w.Code)
		assert.Contains(mt, w.Body.String(), "Admin access required")
	})
}

func TestVerifyPatientRejectsMissingToken(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no header", func(mt *mtest.T) {
		w := serveVerify(mt, mockConfig(mt), "")
		assert.Equal(mt, http.StatusUnauthorized, w.Code)
	})
}
