package trash

import (
	"fmt"

	"insaat-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TrashItemResponse struct {
	ID        uint             `json:"id"`
	Type      models.TrashType `json:"type"`
	Data      string           `json:"data"`
	DeletedAt string           `json:"deleted_at"`
}

// GET /api/trash
func ListTrashHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := GetAll()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çöp kutusu listelenemedi")
		}

		resp := make([]TrashItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, TrashItemResponse{
				ID:        item.ID,
				Type:      item.Type,
				Data:      item.Data,
				DeletedAt: item.DeletedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(resp)
	}
}

// POST /api/trash/:id/restore
// Hata durumunda da 200 döner; sonuç gövdedeki success alanındadır.
func RestoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := c.Params("id")
		var id uint
		if _, err := fmt.Sscan(idStr, &id); err != nil || id == 0 {
			return c.JSON(RestoreResult{Success: false, Error: "Geçersiz çöp kaydı ID"})
		}

		return c.JSON(Restore(id))
	}
}

// DELETE /api/trash/:id
func PermanentDeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := c.Params("id")
		var id uint
		if _, err := fmt.Sscan(idStr, &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz çöp kaydı ID")
		}

		ok, err := PermanentDelete(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çöp kaydı silinemedi")
		}

		return c.JSON(fiber.Map{"success": ok})
	}
}

// DELETE /api/trash
func EmptyTrashHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := EmptyTrash(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çöp kutusu boşaltılamadı")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
