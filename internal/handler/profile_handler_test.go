package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/teamprojectsorg/My-Home-Web-BE/internal/domain"
)

func storedProfile(userID uuid.UUID) *domain.Profile {
	return &domain.Profile{
		UserID:      userID,
		FirstName:   "Kofi",
		Surname:     "Boateng",
		Residence:   "Accra",
		Area:        "Osu",
		LegalID:     "GHA-987654321",
		LegalIDType: domain.LegalIDNationalID,
		PhoneNumber: "+233209876543",
	}
}

func TestGetProfile_Success(t *testing.T) {
	e := echo.New()
	f := newFixture()
	userID := uuid.New()
	f.profiles.AddProfile(storedProfile(userID))

	c, rec := newJSONContext(e, http.MethodGet, "/api/profile", "")
	setupAuthContext(c, userID)

	if err := f.profileHandler.GetProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("Expected success envelope")
	}
	if env.Message != SuccessMessage {
		t.Errorf("Expected message %q, got %q", SuccessMessage, env.Message)
	}
}

func TestGetProfile_NoAuth(t *testing.T) {
	e := echo.New()
	f := newFixture()

	c, rec := newJSONContext(e, http.MethodGet, "/api/profile", "")

	if err := f.profileHandler.GetProfile(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "No Token Provided" {
		t.Errorf("Expected 'No Token Provided', got %q", env.Message)
	}
}

func TestGetProfile_NotRegistered(t *testing.T) {
	e := echo.New()
	f := newFixture()

	c, rec := newJSONContext(e, http.MethodGet, "/api/profile", "")
	setupAuthContext(c, uuid.New())

	if err := f.profileHandler.GetProfile(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Profile Not Registered" {
		t.Errorf("Expected 'Profile Not Registered', got %q", env.Message)
	}
}

func TestGetPublicProfile_MasksPrivateFields(t *testing.T) {
	e := echo.New()
	f := newFixture()
	userID := uuid.New()
	f.profiles.AddProfile(storedProfile(userID))

	c, rec := newJSONContext(e, http.MethodGet, "/api/profile/"+userID.String(), "")
	c.SetParamNames("userID")
	c.SetParamValues(userID.String())

	if err := f.profileHandler.GetPublicProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, private := range []string{"legalId", "phoneNumber", "residence"} {
		if strings.Contains(body, private) {
			t.Errorf("Expected %q to be masked from the public projection", private)
		}
	}
	if !strings.Contains(body, "firstName") {
		t.Error("Expected firstName to survive the public projection")
	}
}

func TestGetPublicProfile_InvalidID(t *testing.T) {
	e := echo.New()
	f := newFixture()

	c, rec := newJSONContext(e, http.MethodGet, "/api/profile/not-a-uuid", "")
	c.SetParamNames("userID")
	c.SetParamValues("not-a-uuid")

	if err := f.profileHandler.GetPublicProfile(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Invalid User ID" {
		t.Errorf("Expected 'Invalid User ID', got %q", env.Message)
	}
}

func TestRegisterProfile_Success(t *testing.T) {
	e := echo.New()
	f := newFixture()
	userID := uuid.New()

	body := `{"firstName":"Kofi","surname":"Boateng","residence":"Accra","area":"Osu","legalId":"GHA-1","legalIdType":"PASSPORT","phoneNumber":"+233200000000"}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/profile", body)
	setupAuthContext(c, userID)

	if err := f.profileHandler.RegisterProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if _, ok := f.profiles.Profiles[userID]; !ok {
		t.Error("Expected profile to be stored under the token subject")
	}
}

func TestRegisterProfile_IncompleteData(t *testing.T) {
	e := echo.New()
	f := newFixture()

	body := `{"firstName":"Kofi"}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/profile", body)
	setupAuthContext(c, uuid.New())

	if err := f.profileHandler.RegisterProfile(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Profile Data Incomplete" {
		t.Errorf("Expected 'Profile Data Incomplete', got %q", env.Message)
	}
}

func TestRegisterProfile_AlreadyExists(t *testing.T) {
	e := echo.New()
	f := newFixture()
	userID := uuid.New()
	f.profiles.AddProfile(storedProfile(userID))

	body := `{"firstName":"Kofi","surname":"Boateng","residence":"Accra","area":"Osu","legalId":"GHA-1","legalIdType":"PASSPORT","phoneNumber":"+233200000000"}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/profile", body)
	setupAuthContext(c, userID)

	if err := f.profileHandler.RegisterProfile(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Profile Already Exists" {
		t.Errorf("Expected 'Profile Already Exists', got %q", env.Message)
	}
}

func TestUpdateProfile_NoFields(t *testing.T) {
	e := echo.New()
	f := newFixture()
	userID := uuid.New()
	f.profiles.AddProfile(storedProfile(userID))

	c, rec := newJSONContext(e, http.MethodPut, "/api/profile", `{}`)
	setupAuthContext(c, userID)

	if err := f.profileHandler.UpdateProfile(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if env := decodeEnvelope(t, rec); env.Message != "No Profile Data Provided" {
		t.Errorf("Expected 'No Profile Data Provided', got %q", env.Message)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	e := echo.New()
	f := newFixture()
	userID := uuid.New()
	f.profiles.AddProfile(storedProfile(userID))

	c, rec := newJSONContext(e, http.MethodPut, "/api/profile", `{"area":"Labone"}`)
	setupAuthContext(c, userID)

	if err := f.profileHandler.UpdateProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if f.profiles.Profiles[userID].Area != "Labone" {
		t.Errorf("Expected area 'Labone', got %s", f.profiles.Profiles[userID].Area)
	}
}

func TestDeleteProfile_Success(t *testing.T) {
	e := echo.New()
	f := newFixture()
	userID := uuid.New()
	f.profiles.AddProfile(storedProfile(userID))

	c, rec := newJSONContext(e, http.MethodDelete, "/api/profile", "")
	setupAuthContext(c, userID)

	if err := f.profileHandler.DeleteProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if len(f.profiles.Profiles) != 0 {
		t.Error("Expected profile to be deleted")
	}
}

func TestUploadAvatar_Success(t *testing.T) {
	e := echo.New()
	f := newFixture()
	userID := uuid.New()
	f.profiles.AddProfile(storedProfile(userID))

	c, rec := newUploadContext(t, e, "/api/profile/avatar", "me.png", "image/png", testPNG(t))
	setupAuthContext(c, userID)

	if err := f.profileHandler.UploadAvatar(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if got := f.profiles.Profiles[userID].AvatarURL; got == nil {
		t.Error("Expected avatar URL to be persisted")
	}
}

func TestUploadAvatar_UnsupportedType(t *testing.T) {
	e := echo.New()
	f := newFixture()
	userID := uuid.New()
	f.profiles.AddProfile(storedProfile(userID))

	c, rec := newUploadContext(t, e, "/api/profile/avatar", "clip.gif", "image/gif", testPNG(t))
	setupAuthContext(c, userID)

	if err := f.profileHandler.UploadAvatar(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Only JPEG and PNG is supported" {
		t.Errorf("Expected 'Only JPEG and PNG is supported', got %q", env.Message)
	}
}

func TestUploadAvatar_NoFile(t *testing.T) {
	e := echo.New()
	f := newFixture()
	userID := uuid.New()
	f.profiles.AddProfile(storedProfile(userID))

	c, rec := newJSONContext(e, http.MethodPost, "/api/profile/avatar", "")
	setupAuthContext(c, userID)

	if err := f.profileHandler.UploadAvatar(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if env := decodeEnvelope(t, rec); env.Message != "No File Received" {
		t.Errorf("Expected 'No File Received', got %q", env.Message)
	}
}
