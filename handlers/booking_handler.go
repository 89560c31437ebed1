package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sendbyop/sendbyop-backend/services"
)

func parseBookingID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// CreateBooking accepts a multipart form: the parcel fields, the receiver
// fields and 1 to 5 photo files under "photos".
func CreateBooking(c *fiber.Ctx) error {
	customerID, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	flightID, err := uuid.Parse(c.FormValue("flight_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid flight_id"})
	}
	weight, err := decimal.NewFromString(c.FormValue("weight_kg"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid weight_kg"})
	}

	var proposedPrice *decimal.Decimal
	if raw := c.FormValue("proposed_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid proposed_price"})
		}
		proposedPrice = &price
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse multipart form"})
	}
	var photos [][]byte
	for _, fileHeader := range form.File["photos"] {
		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read photo upload"})
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read photo upload"})
		}
		photos = append(photos, data)
	}

	input := services.CreateBookingInput{
		FlightID:      flightID,
		WeightKg:      weight,
		Description:   c.FormValue("description"),
		ParcelType:    c.FormValue("parcel_type"),
		ProposedPrice: proposedPrice,
		Receiver: services.ReceiverInput{
			FirstName:   c.FormValue("receiver_first_name"),
			LastName:    c.FormValue("receiver_last_name"),
			Email:       c.FormValue("receiver_email"),
			PhoneNumber: c.FormValue("receiver_phone"),
			Address:     c.FormValue("receiver_address"),
			City:        c.FormValue("receiver_city"),
			Country:     c.FormValue("receiver_country"),
		},
		Photos: photos,
	}

	booking, err := bookingService.Create(c.Context(), customerID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	customerID, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bookings, err := bookingService.ListCustomerBookings(customerID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(bookings)
}

func GetTravelerBookings(c *fiber.Ctx) error {
	travelerID, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bookings, err := bookingService.ListTravelerBookings(travelerID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(bookings)
}

func GetBooking(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}
	booking, err := bookingService.GetBookingDetails(bookingID, actor)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(booking)
}

func ConfirmBooking(c *fiber.Ctx) error {
	travelerID, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}
	booking, err := bookingService.Confirm(bookingID, travelerID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(booking)
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func RejectBooking(c *fiber.Ctx) error {
	travelerID, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}
	var req RejectBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	booking, err := bookingService.Reject(bookingID, travelerID, req.Reason)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(booking)
}

type PayBookingRequest struct {
	Amount        string `json:"amount" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

func PayBooking(c *fiber.Ctx) error {
	customerID, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}
	var req PayBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid amount"})
	}
	booking, err := bookingService.ProcessPayment(bookingID, customerID, amount, req.PaymentMethod)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(booking)
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func CancelBooking(c *fiber.Ctx) error {
	customerID, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}
	var req CancelBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	booking, refund, err := bookingService.CancelByClient(bookingID, customerID, req.Reason)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"booking": booking, "refund": refund})
}

func GetRefundPreview(c *fiber.Ctx) error {
	customerID, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}
	refund, err := bookingService.RefundPreview(bookingID, customerID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(refund)
}

func transitionHandler(fn func(bookingID, actor uuid.UUID) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}
		bookingID, err := parseBookingID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
		}
		if err := fn(bookingID, actor); err != nil {
			return serviceError(c, err)
		}
		booking, err := bookingService.GetBookingDetails(bookingID, actor)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(booking)
	}
}

func HandOverParcel() fiber.Handler {
	return transitionHandler(func(bookingID, actor uuid.UUID) error {
		_, err := bookingService.MarkParcelHandedToTraveler(bookingID, actor)
		return err
	})
}

func ReceiveParcel() fiber.Handler {
	return transitionHandler(func(bookingID, actor uuid.UUID) error {
		_, err := bookingService.ConfirmParcelReceivedByTraveler(bookingID, actor)
		return err
	})
}

func MarkInTransit() fiber.Handler {
	return transitionHandler(func(bookingID, actor uuid.UUID) error {
		_, err := bookingService.MarkInTransit(bookingID, actor)
		return err
	})
}

func DeliverParcel() fiber.Handler {
	return transitionHandler(func(bookingID, actor uuid.UUID) error {
		_, err := bookingService.ConfirmParcelDeliveredToReceiver(bookingID, actor)
		return err
	})
}

func MarkDelivered() fiber.Handler {
	return transitionHandler(func(bookingID, actor uuid.UUID) error {
		_, err := bookingService.MarkAsDelivered(bookingID, actor)
		return err
	})
}

func PickUpParcel() fiber.Handler {
	return transitionHandler(func(bookingID, actor uuid.UUID) error {
		_, err := bookingService.MarkAsPickedUp(bookingID, actor)
		return err
	})
}

// ConfirmReception is the receiver-facing endpoint reached through the
// delivery notification link; the receiver has no platform account.
func ConfirmReception(c *fiber.Ctx) error {
	bookingID, err := parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}
	booking, err := bookingService.ConfirmReceptionByReceiver(bookingID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(booking)
}
