package validate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teressaborra/Bookflix-sub000/model"
)

func bookingTestApp(captured *model.CreateBookingInput) *fiber.App {
	app := fiber.New()
	app.Post("/bookings", CreateBooking(), func(c *fiber.Ctx) error {
		*captured = c.Locals("input").(model.CreateBookingInput)
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func postJSON(app *fiber.App, path, body string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	return resp
}

func TestCreateBookingValidInput(t *testing.T) {
	var captured model.CreateBookingInput
	app := bookingTestApp(&captured)

	resp := postJSON(app, "/bookings", `{"showId":1,"seats":[4,5],"paymentMethod":"UPI"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, uint(1), captured.ShowId)
	assert.Equal(t, []int{4, 5}, captured.Seats)
	assert.Equal(t, "UPI", captured.PaymentMethod)
}

func TestCreateBookingDefaultsPaymentMethod(t *testing.T) {
	var captured model.CreateBookingInput
	app := bookingTestApp(&captured)

	resp := postJSON(app, "/bookings", `{"showId":1,"seats":[4]}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "CARD", captured.PaymentMethod)
}

func TestCreateBookingRejectsBadInput(t *testing.T) {
	var captured model.CreateBookingInput
	app := bookingTestApp(&captured)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"showId":`},
		{"missing seats", `{"showId":1}`},
		{"empty seats", `{"showId":1,"seats":[]}`},
		{"zero seat number", `{"showId":1,"seats":[0]}`},
		{"duplicate seats", `{"showId":1,"seats":[4,4]}`},
		{"unknown payment method", `{"showId":1,"seats":[4],"paymentMethod":"BARTER"}`},
		{"negative points", `{"showId":1,"seats":[4],"pointsToRedeem":-5}`},
		{"missing show", `{"seats":[4]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(app, "/bookings", tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRescheduleBookingValidation(t *testing.T) {
	app := fiber.New()
	app.Post("/reschedule", RescheduleBooking(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp := postJSON(app, "/reschedule", `{"newShowId":7}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postJSON(app, "/reschedule", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCancelBookingBodyOptional(t *testing.T) {
	app := fiber.New()
	app.Post("/cancel", CancelBooking(), func(c *fiber.Ctx) error {
		input := c.Locals("input").(model.CancelBookingInput)
		return c.SendString(input.Reason)
	})

	req := httptest.NewRequest(http.MethodPost, "/cancel", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postJSON(app, "/cancel", `{"reason":"plans changed"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
