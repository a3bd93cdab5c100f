package gateway

import (
	"errors"
	"net/http"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (g *Gateway) listFood(c *gin.Context) {
	ctx := c.Request.Context()

	if items, err := g.cache.GetFoodListCache(ctx); err == nil {
		c.JSON(http.StatusOK, items)
		return
	}

	items, err := g.foods.FindAll(ctx)
	if err != nil {
		g.logger.Error("failed to list food items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if items == nil {
		items = []models.FoodItem{}
	}

	if err := g.cache.CacheFoodList(ctx, items); err != nil {
		g.logger.Warn("failed to cache food list", zap.Error(err))
	}

	c.JSON(http.StatusOK, items)
}

func (g *Gateway) getFood(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if item, err := g.cache.GetFoodCache(ctx, id); err == nil {
		c.JSON(http.StatusOK, item)
		return
	}

	item, err := g.foods.FindByID(ctx, id)
	if err != nil {
		g.logger.Error("failed to fetch food item", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Food item not found"})
		return
	}

	if err := g.cache.CacheFood(ctx, item); err != nil {
		g.logger.Warn("failed to cache food item", zap.String("id", id), zap.Error(err))
	}

	c.JSON(http.StatusOK, item)
}

type createFoodRequest struct {
	Name     string          `json:"name" binding:"required"`
	Category models.Category `json:"category" binding:"required"`
	Price    float64         `json:"price" binding:"required"`
	Image    string          `json:"image" binding:"required"`
	Quantity *int            `json:"quantity"`
}

func (g *Gateway) createFood(c *gin.Context) {
	var req createFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	if req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Price must be a positive number"})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category"})
		return
	}

	quantity := models.DefaultQuantity
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "quantity must be a non-negative number"})
			return
		}
		quantity = *req.Quantity
	}

	item := &models.FoodItem{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Image:    req.Image,
		Quantity: quantity,
	}

	if err := g.foods.Insert(c.Request.Context(), item); err != nil {
		g.logger.Error("failed to add food item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Food item added successfully",
		"foodItem": item,
	})
}

type updateFoodRequest struct {
	Name     *string          `json:"name"`
	Category *models.Category `json:"category"`
	Price    *float64         `json:"price"`
	Image    *string          `json:"image"`
	Quantity *int             `json:"quantity"`
}

func (g *Gateway) updateFood(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req updateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	item, err := g.foods.FindByID(ctx, id)
	if err != nil {
		g.logger.Error("failed to fetch food item", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Food item not found"})
		return
	}

	// Update fields only if provided
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category"})
			return
		}
		item.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Price must be a positive number"})
			return
		}
		item.Price = *req.Price
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "quantity must be a non-negative number"})
			return
		}
		item.Quantity = *req.Quantity
	}

	if err := g.foods.Update(ctx, item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Food item not found"})
			return
		}
		g.logger.Error("failed to update food item", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Food item updated successfully",
		"foodItem": item,
	})
}

func (g *Gateway) deleteFood(c *gin.Context) {
	id := c.Param("id")

	if err := g.foods.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Food item not found"})
			return
		}
		g.logger.Error("failed to delete food item", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Food item deleted successfully"})
}
