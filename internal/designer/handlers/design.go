package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"enclosure-designer/internal/designer/composer"
	"enclosure-designer/internal/designer/graph"
	"enclosure-designer/internal/designer/mapper"
	"enclosure-designer/internal/designer/models"
	"enclosure-designer/internal/designer/parser"
	"enclosure-designer/internal/designer/repository"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Design Handler
// ============================================================

// Store хранилище построенных корпусов.
type Store interface {
	Save(ctx context.Context, d *models.Design) (*models.Design, error)
	GetByID(ctx context.Context, id string) (*models.Design, error)
	List(ctx context.Context, limit int) ([]models.Design, error)
}

type DesignHandler struct {
	store Store
	base  models.Parameters
}

// NewDesignHandler base задает значения параметров, отсутствующих в запросе.
func NewDesignHandler(store Store, base models.Parameters) *DesignHandler {
	return &DesignHandler{store: store, base: base}
}

type buildResponse struct {
	Design   *models.Design  `json:"design"`
	Assembly mapper.Document `json:"assembly"`
}

type designResponse struct {
	Design   *models.Design  `json:"design"`
	Assembly json.RawMessage `json:"assembly"`
}

// Build строит корпус по параметрам из тела запроса и сохраняет результат.
func (h *DesignHandler) Build(c fiber.Ctx) error {
	log.Printf("[DESIGNER] Build request")
	log.Printf("[DESIGNER] Content-Type: %s", c.Get("Content-Type"))

	params, err := h.readParameters(c)
	if err != nil {
		log.Printf("[DESIGNER] Parameters error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	assembly, err := composer.Build(params)
	if err != nil {
		log.Printf("[DESIGNER] Build error: %v", err)
		return buildError(c, err)
	}

	doc := mapper.Export(assembly)
	data, err := mapper.Marshal(doc)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to encode assembly"})
	}

	design, err := h.store.Save(context.Background(), &models.Design{
		Unit:       params.Unit,
		Parameters: params,
		Assembly:   data,
		NetVolume:  doc.NetVolume,
	})
	if err != nil {
		log.Printf("[STORE] Save error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store design"})
	}

	log.Printf("[DESIGNER] Design %s built, net volume %g %s^3", design.ID, doc.NetVolume, design.Unit)
	return c.Status(http.StatusCreated).JSON(buildResponse{Design: design, Assembly: doc})
}

// GetDesign возвращает сохраненный корпус.
func (h *DesignHandler) GetDesign(c fiber.Ctx) error {
	design, err := h.store.GetByID(context.Background(), c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(designResponse{Design: design, Assembly: json.RawMessage(design.Assembly)})
}

// ListDesigns последние сохраненные корпуса, ?limit=N.
func (h *DesignHandler) ListDesigns(c fiber.Ctx) error {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "limit must be a positive integer"})
		}
		limit = n
	}

	designs, err := h.store.List(context.Background(), limit)
	if err != nil {
		log.Printf("[STORE] List error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list designs"})
	}
	return c.JSON(fiber.Map{"designs": designs})
}

// GetDesignSVG перестраивает сохраненный корпус по его параметрам и отдает вид сверху.
func (h *DesignHandler) GetDesignSVG(c fiber.Ctx) error {
	design, err := h.store.GetByID(context.Background(), c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}

	assembly, err := composer.Build(design.Parameters)
	if err != nil {
		log.Printf("[DESIGNER] Rebuild error for %s: %v", design.ID, err)
		return buildError(c, err)
	}
	return sendSVG(c, assembly)
}

// Render строит корпус без сохранения и отдает SVG.
func (h *DesignHandler) Render(c fiber.Ctx) error {
	log.Printf("[RENDER] Received request")

	params, err := h.readParameters(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	assembly, err := composer.Build(params)
	if err != nil {
		log.Printf("[RENDER] Build error: %v", err)
		return buildError(c, err)
	}
	return sendSVG(c, assembly)
}

// Wireframe строит корпус без сохранения и отдает граф рёбер.
func (h *DesignHandler) Wireframe(c fiber.Ctx) error {
	params, err := h.readParameters(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	assembly, err := composer.Build(params)
	if err != nil {
		return buildError(c, err)
	}
	return c.JSON(graph.NewGraphBuilder().BuildFromAssembly(assembly))
}

// ============================================================
// Helpers
// ============================================================

func storeError(c fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "design not found"})
	}
	log.Printf("[STORE] Get error: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load design"})
}

// readParameters принимает файл параметров в multipart (поле file) либо тело запроса.
// Пустое тело означает параметры по умолчанию.
func (h *DesignHandler) readParameters(c fiber.Ctx) (models.Parameters, error) {
	if file, err := c.FormFile("file"); err == nil {
		log.Printf("[DESIGNER] Parameter file received: %s, size: %d", file.Filename, file.Size)
		f, err := file.Open()
		if err != nil {
			return models.Parameters{}, err
		}
		defer f.Close()

		format := parser.DetectFormat(file.Filename, file.Header.Get("Content-Type"))
		return parser.ParseParameters(f, format, h.base)
	}

	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return h.base, nil
	}

	format := parser.DetectFormat("", c.Get("Content-Type"))
	return parser.ParseParameters(bytes.NewReader(body), format, h.base)
}

func sendSVG(c fiber.Ctx, assembly *composer.Assembly) error {
	svg, err := mapper.NewRenderer().Render(assembly)
	if err != nil {
		log.Printf("[RENDER] Render error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}
