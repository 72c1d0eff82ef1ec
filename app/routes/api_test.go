package routes_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/app/repositories"
	"github.com/shashiranjanraj/staybook/app/routes"
	"github.com/shashiranjanraj/staybook/app/services"
	"github.com/shashiranjanraj/staybook/pkg/auth"
	"github.com/shashiranjanraj/staybook/pkg/cache"
	"github.com/shashiranjanraj/staybook/pkg/event"
	"github.com/shashiranjanraj/staybook/pkg/rbac"
	"github.com/shashiranjanraj/staybook/pkg/router"
	"github.com/shashiranjanraj/staybook/pkg/testkit"
)

type fixture struct {
	h      http.Handler
	db     *gorm.DB
	rooms  *repositories.RoomRepository
	admin  string
	guest  string
	other  string
	tokens *auth.Tokens
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testkit.DB(t)
	ctx := context.Background()

	tokens := auth.NewTokens("test-secret", time.Hour)
	users := repositories.NewUserRepository(db)
	profiles := repositories.NewProfileRepository(db)
	accounts := services.NewAuthService(users, profiles, tokens)

	token := func(email string, role rbac.Role) string {
		u, err := accounts.CreateUser(ctx, services.NewUser{Email: email, Password: "pw", Role: role})
		require.NoError(t, err)
		tok, _, err := tokens.Issue(u.ID)
		require.NoError(t, err)
		return tok
	}

	r := router.New()
	routes.RegisterAPI(r, routes.Deps{
		DB:          db,
		Cache:       cache.New(nil, ""),
		Disk:        testkit.Disk(t),
		Bus:         event.New(),
		Tokens:      tokens,
		FeaturedTTL: time.Minute,
	})

	return fixture{
		h:      r.Handler(),
		db:     db,
		rooms:  repositories.NewRoomRepository(db),
		admin:  token("admin@example.com", rbac.RoleAdmin),
		guest:  token("guest@example.com", rbac.RoleGuest),
		other:  token("other@example.com", rbac.RoleGuest),
		tokens: tokens,
	}
}

func (f fixture) room(t *testing.T, rate models.Money) *models.Room {
	t.Helper()
	room := &models.Room{Name: "Heritage Suite", PricePerNight: rate, Category: models.CategorySuite, Capacity: 2, IsFeatured: true}
	require.NoError(t, f.rooms.Create(context.Background(), room))
	return room
}

func TestLoginSetsCookie(t *testing.T) {
	f := setup(t)

	rec := testkit.Serve(f.h, testkit.Request(t, http.MethodPost, "/api/login", map[string]string{"email": "guest@example.com", "password": "pw"}))
	var sess struct {
		Token string    `json:"token"`
		User  auth.User `json:"user"`
	}
	testkit.Decode(t, rec, http.StatusOK, &sess)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "guest@example.com", sess.User.Email)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	rec = testkit.Serve(f.h, testkit.Request(t, http.MethodPost, "/api/login", map[string]string{"email": "guest@example.com", "password": "nope"}))
	testkit.Decode(t, rec, http.StatusUnauthorized, nil)

	rec = testkit.Serve(f.h, testkit.Request(t, http.MethodPost, "/api/login", map[string]string{"email": "not-an-email"}))
	env := testkit.Decode(t, rec, http.StatusUnprocessableEntity, nil)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")
}

func TestQuoteEndpoint(t *testing.T) {
	f := setup(t)
	room := f.room(t, 25000)

	rec := testkit.Serve(f.h, testkit.Request(t, http.MethodGet, "/api/rooms/"+room.ID+"/quote?check_in=2024-06-01&check_out=2024-06-04", nil))
	var q struct {
		Nights int    `json:"nights"`
		Total  string `json:"total"`
	}
	testkit.Decode(t, rec, http.StatusOK, &q)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, "750.00", q.Total)

	rec = testkit.Serve(f.h, testkit.Request(t, http.MethodGet, "/api/rooms/"+room.ID+"/quote?check_in=2024-06-04&check_out=2024-06-01", nil))
	env := testkit.Decode(t, rec, http.StatusUnprocessableEntity, nil)
	assert.Contains(t, env.Errors, "check_out")

	rec = testkit.Serve(f.h, testkit.Request(t, http.MethodGet, "/api/rooms/"+room.ID+"/quote?check_out=2024-06-01", nil))
	env = testkit.Decode(t, rec, http.StatusUnprocessableEntity, nil)
	assert.Contains(t, env.Errors, "check_in")

	rec = testkit.Serve(f.h, testkit.Request(t, http.MethodGet, "/api/rooms/missing/quote?check_in=2024-06-01&check_out=2024-06-04", nil))
	testkit.Decode(t, rec, http.StatusNotFound, nil)
}

func TestBookingLifecycle(t *testing.T) {
	f := setup(t)
	room := f.room(t, 25000)

	body := map[string]any{"room_id": room.ID, "check_in": "2024-06-01", "check_out": "2024-06-04", "total_price": "1.00"}

	rec := testkit.Serve(f.h, testkit.Request(t, http.MethodPost, "/api/bookings", body))
	testkit.Decode(t, rec, http.StatusUnauthorized, nil)

	rec = testkit.Serve(f.h, testkit.WithToken(testkit.Request(t, http.MethodPost, "/api/bookings", body), f.guest))
	var b models.Booking
	testkit.Decode(t, rec, http.StatusCreated, &b)
	assert.Equal(t, models.Money(75000), b.TotalPrice, "client total is ignored")
	assert.Equal(t, models.BookingConfirmed, b.Status)

	rec = testkit.Serve(f.h, testkit.WithToken(testkit.Request(t, http.MethodGet, "/api/bookings", nil), f.guest))
	var list []struct {
		ID     string       `json:"id"`
		IsPast bool         `json:"is_past"`
		Room   *models.Room `json:"room"`
	}
	testkit.Decode(t, rec, http.StatusOK, &list)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsPast)
	require.NotNil(t, list[0].Room)
	assert.Equal(t, "Heritage Suite", list[0].Room.Name)

	rec = testkit.Serve(f.h, testkit.WithToken(testkit.Request(t, http.MethodDelete, "/api/bookings/"+b.ID, nil), f.other))
	testkit.Decode(t, rec, http.StatusForbidden, nil)

	rec = testkit.Serve(f.h, testkit.WithToken(testkit.Request(t, http.MethodDelete, "/api/bookings/"+b.ID, nil), f.guest))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = testkit.Serve(f.h, testkit.WithToken(testkit.Request(t, http.MethodDelete, "/api/bookings/"+b.ID, nil), f.guest))
	testkit.Decode(t, rec, http.StatusNotFound, nil)
}

func TestBookingRejectsOverlongStay(t *testing.T) {
	f := setup(t)
	room := f.room(t, 25000)

	for _, out := range []string{"2025-06-03", "2400-01-01"} {
		body := map[string]any{"room_id": room.ID, "check_in": "2024-06-01", "check_out": out}
		rec := testkit.Serve(f.h, testkit.WithToken(testkit.Request(t, http.MethodPost, "/api/bookings", body), f.guest))
		env := testkit.Decode(t, rec, http.StatusUnprocessableEntity, nil)
		assert.Contains(t, env.Errors, "check_out")
		assert.NotContains(t, env.Errors, "price_per_night")
	}

	rec := testkit.Serve(f.h, testkit.Request(t, http.MethodGet, "/api/rooms/"+room.ID+"/quote?check_in=2024-06-01&check_out=2400-01-01", nil))
	env := testkit.Decode(t, rec, http.StatusUnprocessableEntity, nil)
	assert.Contains(t, env.Errors, "check_out")

	var n int64
	require.NoError(t, f.db.Model(&models.Booking{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestProfileEndpoint(t *testing.T) {
	f := setup(t)

	rec := testkit.Serve(f.h, testkit.WithToken(testkit.Request(t, http.MethodGet, "/api/profile", nil), f.admin))
	var p services.ProfileView
	testkit.Decode(t, rec, http.StatusOK, &p)
	assert.True(t, p.IsAdmin)
	assert.Equal(t, services.DefaultGuestName, p.FullName)
}

func TestAdminGate(t *testing.T) {
	f := setup(t)

	browser := func(token string) *http.Request {
		req, _ := http.NewRequest(http.MethodGet, "/admin/rooms", nil)
		if token != "" {
			testkit.WithToken(req, token)
		}
		return req
	}

	rec := testkit.Serve(f.h, browser(""))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, rbac.LoginPath, rec.Header().Get("Location"))

	rec = testkit.Serve(f.h, browser(f.guest))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, rbac.HomePath, rec.Header().Get("Location"))

	rec = testkit.Serve(f.h, browser(f.admin))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = testkit.Serve(f.h, testkit.Request(t, http.MethodGet, "/admin/rooms", nil))
	env := testkit.Decode(t, rec, http.StatusUnauthorized, nil)
	assert.Equal(t, rbac.LoginPath, env.Redirect)

	rec = testkit.Serve(f.h, testkit.WithToken(testkit.Request(t, http.MethodGet, "/admin/rooms", nil), f.guest))
	env = testkit.Decode(t, rec, http.StatusForbidden, nil)
	assert.Equal(t, rbac.HomePath, env.Redirect)
}

func multipartRoom(t *testing.T, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "room.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := testkit.Request(t, http.MethodPost, "/admin/rooms", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestAdminCreatesAndDeletesRoom(t *testing.T) {
	f := setup(t)
	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	fields := map[string]string{
		"name":            "Sky Loft",
		"description":     "Top floor.",
		"price_per_night": "420.50",
		"category":        "Luxury",
		"capacity":        "2",
		"is_featured":     "on",
	}

	rec := testkit.Serve(f.h, testkit.WithToken(multipartRoom(t, fields, nil), f.admin))
	env := testkit.Decode(t, rec, http.StatusUnprocessableEntity, nil)
	assert.Contains(t, env.Errors, "image")

	bad := map[string]string{"name": "X", "price_per_night": "10", "category": "Palace", "capacity": "1"}
	rec = testkit.Serve(f.h, testkit.WithToken(multipartRoom(t, bad, png), f.admin))
	env = testkit.Decode(t, rec, http.StatusUnprocessableEntity, nil)
	assert.Contains(t, env.Errors, "category")

	rec = testkit.Serve(f.h, testkit.WithToken(multipartRoom(t, fields, png), f.admin))
	var room models.Room
	testkit.Decode(t, rec, http.StatusCreated, &room)
	assert.Equal(t, models.Money(42050), room.PricePerNight)
	assert.True(t, room.IsFeatured)
	assert.Contains(t, room.ImageURL, "/storage/room-photos/")
	assert.Equal(t, "/api/rooms/"+room.ID, rec.Header().Get("Location"))

	img := testkit.Serve(f.h, testkit.Request(t, http.MethodGet, room.ImageURL, nil))
	assert.Equal(t, http.StatusOK, img.Code)
	assert.Equal(t, png, img.Body.Bytes())

	rec = testkit.Serve(f.h, testkit.Request(t, http.MethodGet, "/api/rooms/featured", nil))
	var featured []models.Room
	testkit.Decode(t, rec, http.StatusOK, &featured)
	require.Len(t, featured, 1)
	assert.Equal(t, room.ID, featured[0].ID)

	rec = testkit.Serve(f.h, testkit.WithToken(testkit.Request(t, http.MethodDelete, "/admin/rooms/"+room.ID, nil), f.admin))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = testkit.Serve(f.h, testkit.Request(t, http.MethodGet, "/api/rooms/"+room.ID, nil))
	testkit.Decode(t, rec, http.StatusNotFound, nil)
}

func TestRoomIndexFilters(t *testing.T) {
	f := setup(t)
	f.room(t, 100)

	rec := testkit.Serve(f.h, testkit.Request(t, http.MethodGet, "/api/rooms?category=Suite&min_capacity=2", nil))
	var rooms []models.Room
	testkit.Decode(t, rec, http.StatusOK, &rooms)
	assert.Len(t, rooms, 1)

	rec = testkit.Serve(f.h, testkit.Request(t, http.MethodGet, "/api/rooms?category=Palace", nil))
	testkit.Decode(t, rec, http.StatusUnprocessableEntity, nil)
}
