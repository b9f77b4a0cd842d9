package routes

import (
	"path/filepath"

	"lulukitchen/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin - POST /api/admin/login
func (h *Handler) adminLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	var admin models.Admin
	if err := h.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	if admin.Password != req.Password {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"admin":   admin,
	})
}

// Image upload handler
func (h *Handler) uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get uploaded file",
		})
	}

	// Generate unique filename
	ext := filepath.Ext(file.Filename)
	filename := uuid.New().String() + ext
	dest := filepath.Join(h.Cfg.UploadsDir, filename)

	if err := c.SaveFile(file, dest); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save file",
		})
	}

	return c.JSON(fiber.Map{
		"filename": filename,
		"path":     "/uploads/" + filename,
	})
}

// CreateAddOn - POST /api/addons
func (h *Handler) createAddOn(c *fiber.Ctx) error {
	addOn := new(models.AddOn)
	if err := c.BodyParser(addOn); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(addOn); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.DB.Create(addOn).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create add-on",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(addOn)
}

// UpdateAddOn - PUT /api/addons/:id
func (h *Handler) updateAddOn(c *fiber.Ctx) error {
	id := c.Params("id")

	var existing models.AddOn
	if err := h.DB.First(&existing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Add-on not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find add-on",
		})
	}

	addOn := new(models.AddOn)
	if err := c.BodyParser(addOn); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	// Updates skips zero values, so availability toggles go through Select.
	if err := h.DB.Model(&existing).Select("NameHe", "NameEn", "Price", "Available", "SortOrder", "MenuItemID").Updates(addOn).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update add-on",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Add-on updated successfully",
		"data":    existing,
	})
}

// DeleteAddOn - DELETE /api/addons/:id
func (h *Handler) deleteAddOn(c *fiber.Ctx) error {
	id := c.Params("id")

	var addOn models.AddOn
	if err := h.DB.First(&addOn, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Add-on not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find add-on",
		})
	}

	if err := h.DB.Delete(&addOn).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete add-on",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Add-on deleted successfully",
	})
}

// UpdateVacation - PUT /api/vacation
// Single-row table; creates the row on first use, updates it afterwards.
func (h *Handler) updateVacation(c *fiber.Ctx) error {
	update := new(models.VacationSetting)
	if err := c.BodyParser(update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var setting models.VacationSetting
	if err := h.DB.First(&setting).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to check vacation settings",
			})
		}
		if err := h.DB.Create(update).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create vacation settings",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Vacation settings created successfully",
			"data":    update,
		})
	}

	if err := h.DB.Model(&setting).Select("IsActive", "StartDate", "EndDate", "MessageHe", "MessageEn").Updates(update).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update vacation settings",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Vacation settings updated successfully",
		"data":    setting,
	})
}

// GetApprovedReviews - GET /api/reviews
func (h *Handler) getApprovedReviews(c *fiber.Ctx) error {
	var reviews []models.Recommendation
	if err := h.DB.Where("status = ?", models.ReviewStatusApproved).Order("created_at desc").Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get reviews",
		})
	}
	return c.JSON(reviews)
}

// GetAllReviews - GET /api/reviews/all
func (h *Handler) getAllReviews(c *fiber.Ctx) error {
	var reviews []models.Recommendation
	if err := h.DB.Order("created_at desc").Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get reviews",
		})
	}
	return c.JSON(reviews)
}

// CreateReview - POST /api/reviews
// Customer submissions land as pending until an admin approves them.
func (h *Handler) createReview(c *fiber.Ctx) error {
	review := new(models.Recommendation)
	if err := c.BodyParser(review); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(review); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	review.Status = models.ReviewStatusPending
	if err := h.DB.Create(review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create review",
		})
	}

	h.Notifier.ForwardToAppsScript(review)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "ההמלצה נשלחה בהצלחה!",
		"data":    review,
	})
}

// UpdateReview - PUT /api/reviews/:id
func (h *Handler) updateReview(c *fiber.Ctx) error {
	id := c.Params("id")

	var existing models.Recommendation
	if err := h.DB.First(&existing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Review not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find review",
		})
	}

	update := new(models.Recommendation)
	if err := c.BodyParser(update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := h.DB.Model(&existing).Updates(update).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update review",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Review updated successfully",
		"data":    existing,
	})
}

// DeleteReview - DELETE /api/reviews/:id
func (h *Handler) deleteReview(c *fiber.Ctx) error {
	id := c.Params("id")

	var review models.Recommendation
	if err := h.DB.First(&review, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Review not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find review",
		})
	}

	if err := h.DB.Delete(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete review",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Review deleted successfully",
	})
}

// CreateContactMessage - POST /api/contact
func (h *Handler) createContactMessage(c *fiber.Ctx) error {
	msg := new(models.ContactMessage)
	if err := c.BodyParser(msg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(msg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	msg.Status = "new"
	if err := h.DB.Create(msg).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save message",
		})
	}

	h.Notifier.SendContactEmail(msg)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "ההודעה נשלחה בהצלחה!",
	})
}
