package gallery

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"

	"atelier.GO/api"
	"atelier.GO/config"
	galleryEntity "atelier.GO/model/entity/gallery"
	galleryRepo "atelier.GO/model/repository/gallery"
	"atelier.GO/service/media"
)

func init() {
	api.RegisterRoute(RegisterPublicGalleryRoutes)
	api.RegisterModule(RegisterGalleryAdminRoutes)
}

const listCacheKey = "gallery:list"

// RegisterPublicGalleryRoutes exposes the gallery listing.
func RegisterPublicGalleryRoutes(e *echo.Echo, deps *api.Deps) {
	e.GET("/public/galeria", func(c echo.Context) error {
		if deps.DB == nil {
			return c.JSON(http.StatusOK, []galleryEntity.GalleryImage{})
		}
		if deps.Cache != nil {
			if v, ok := deps.Cache.Get(listCacheKey); ok {
				return c.JSON(http.StatusOK, v)
			}
		}
		images, err := galleryRepo.GetGalleryRepository(deps.DB).FindAll()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if deps.Cache != nil {
			deps.Cache.Set(listCacheKey, images, 300, []string{"gallery"})
		}
		return c.JSON(http.StatusOK, images)
	})
}

// RegisterGalleryAdminRoutes handles uploads (authenticated /api group).
// An upload stores the original, derives thumbnail + WebP renditions and
// records the image row.
func RegisterGalleryAdminRoutes(g *echo.Group, deps *api.Deps) {
	gg := g.Group("/gallery")

	gg.POST("/upload", func(c echo.Context) error {
		file, err := c.FormFile("image")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file is required"})
		}
		title := c.FormValue("title")
		if title == "" {
			title = file.Filename
		}
		position := 0
		if v := c.FormValue("position"); v != "" {
			position, _ = strconv.Atoi(v)
		}

		mediaDir := config.AppConfig.MediaDir
		if err := os.MkdirAll(mediaDir, 0755); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		defer src.Close()

		dstPath := filepath.Join(mediaDir, filepath.Base(file.Filename))
		dst, err := os.Create(dstPath)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if _, err := io.Copy(dst, src); err != nil {
			dst.Close()
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		dst.Close()

		renditions, err := media.Derive(dstPath, filepath.Join(mediaDir, "derived"))
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}

		img := &galleryEntity.GalleryImage{
			Title:     title,
			Path:      dstPath,
			ThumbPath: renditions.Thumb,
			WebpPath:  renditions.Webp,
			Position:  uint(position),
		}
		if err := galleryRepo.GetGalleryRepository(deps.DB).Create(img); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if deps.Cache != nil {
			deps.Cache.DeleteByTag("gallery")
		}
		return c.JSON(http.StatusCreated, img)
	})

	gg.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image id"})
		}
		if err := galleryRepo.GetGalleryRepository(deps.DB).Delete(uint(id)); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if deps.Cache != nil {
			deps.Cache.DeleteByTag("gallery")
		}
		return c.NoContent(http.StatusNoContent)
	})
}
