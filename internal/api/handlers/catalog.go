package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/repository"
)

// HandleListProducts handles GET /v1/products with optional filters
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.ProductFilter{
			Category: c.Query("category"),
			Limit:    queryInt(c, "limit", 0),
			Offset:   queryInt(c, "offset", 0),
		}
		filter.Featured = queryBool(c, "featured")
		filter.New = queryBool(c, "new")
		filter.BestSeller = queryBool(c, "bestSeller")

		products, err := repos.Product.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"count":    len(products),
		})
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := repos.Product.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleSearchProducts handles GET /v1/products/search?q=
func HandleSearchProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "query parameter q is required"})
			return
		}

		products, err := repos.Product.Search(c.Request.Context(), query, queryInt(c, "limit", 0))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"count":    len(products),
		})
	}
}

// HandleListCategories handles GET /v1/categories
func HandleListCategories(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := repos.Category.ListActive(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// HandleListBanners handles GET /v1/banners, ordered for the home carousel
func HandleListBanners(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		banners, err := repos.Banner.ListActive(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"banners": banners})
	}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func queryBool(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(c.Query(name))
	return err == nil && v
}
