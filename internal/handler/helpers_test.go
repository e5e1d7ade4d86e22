package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/middleware"
	"github.com/teamprojectsorg/My-Home-Web-BE/internal/service"
	"github.com/teamprojectsorg/My-Home-Web-BE/internal/testutil"
)

// fixture wires the full service stack over in-memory mocks
type fixture struct {
	profiles *testutil.MockProfileRepository
	listings *testutil.MockListingRepository
	images   *testutil.MockListingImageRepository
	reviews  *testutil.MockReviewRepository
	cascade  *testutil.MockCascadeRepository
	store    *testutil.MockObjectStore

	profileHandler *ProfileHandler
	listingHandler *ListingHandler
	reviewHandler  *ReviewHandler
}

func newFixture() *fixture {
	profileRepo := testutil.NewMockProfileRepository()
	listingRepo := testutil.NewMockListingRepository()
	imageRepo := testutil.NewMockListingImageRepository(listingRepo)
	reviewRepo := testutil.NewMockReviewRepository(listingRepo)
	cascadeRepo := testutil.NewMockCascadeRepository(profileRepo, listingRepo, imageRepo, reviewRepo)
	store := testutil.NewMockObjectStore()
	media := service.NewMediaService(store, 2)

	return &fixture{
		profiles:       profileRepo,
		listings:       listingRepo,
		images:         imageRepo,
		reviews:        reviewRepo,
		cascade:        cascadeRepo,
		store:          store,
		profileHandler: NewProfileHandler(service.NewProfileService(profileRepo, cascadeRepo, media)),
		listingHandler: NewListingHandler(service.NewListingService(listingRepo, imageRepo, cascadeRepo, media)),
		reviewHandler:  NewReviewHandler(service.NewReviewService(reviewRepo)),
	}
}

// setupAuthContext places a caller identity on the context the way the auth
// middleware does after token validation
func setupAuthContext(c echo.Context, userID uuid.UUID) {
	ctx := context.WithValue(c.Request().Context(), middleware.UserIDKey, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to unmarshal envelope: %v", err)
	}
	return env
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// newUploadContext builds a multipart request with one file under the
// "image" field.
func newUploadContext(t *testing.T, e *echo.Echo, target, filename, contentType string, payload []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("Failed to create part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("Failed to write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
