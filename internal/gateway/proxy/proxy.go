package proxy

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Proxy Handler
// ============================================================

// Upstream сервис, на который шлюз пересылает запросы.
type Upstream struct {
	baseURL string
	client  *http.Client
}

func NewUpstream(baseURL string, timeout time.Duration) *Upstream {
	return &Upstream{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Route пересылает запрос на тот же путь upstream, подставляя :параметры маршрута
// и сохраняя query string. Например "/designs/:id/svg".
func (u *Upstream) Route(path string) fiber.Handler {
	return func(c fiber.Ctx) error {
		target := u.baseURL + expand(path, c)
		if qs := string(c.Request().URI().QueryString()); qs != "" {
			target += "?" + qs
		}
		return u.forward(c, target)
	}
}

// Ping проверяет доступность upstream по его liveness-пробе.
func (u *Upstream) Ping() error {
	resp, err := u.client.Get(u.baseURL + "/health/live")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	return nil
}

// expand подставляет параметры маршрута одним экранированным сегментом пути.
func expand(path string, c fiber.Ctx) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			value := c.Params(p[1:])
			if decoded, err := url.PathUnescape(value); err == nil {
				value = decoded
			}
			parts[i] = url.PathEscape(value)
		}
	}
	return strings.Join(parts, "/")
}

// forward проксирует любой метод с учетом multipart/raw.
func (u *Upstream) forward(c fiber.Ctx, targetURL string) error {
	log.Printf("[PROXY] Request: %s %s", c.Method(), c.Path())
	log.Printf("[PROXY] Content-Type: %s", c.Get("Content-Type"))
	log.Printf("[PROXY] Forwarding to: %s", targetURL)

	contentType := c.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return u.sendRaw(c, targetURL, contentType)
	}
	return u.sendMultipart(c, targetURL)
}

func (u *Upstream) sendRaw(c fiber.Ctx, targetURL, contentType string) error {
	req, err := http.NewRequest(c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		log.Printf("[PROXY] build request error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return u.do(c, req)
}

func (u *Upstream) sendMultipart(c fiber.Ctx, targetURL string) error {
	form, err := c.MultipartForm()
	if err != nil {
		log.Printf("[PROXY] Failed to parse multipart: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid multipart data"})
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, files := range form.File {
		for _, fileHeader := range files {
			if err := copyFilePart(writer, key, fileHeader); err != nil {
				log.Printf("[PROXY] Failed to copy file %s: %v", fileHeader.Filename, err)
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid multipart file"})
			}
		}
	}
	for key, values := range form.Value {
		for _, value := range values {
			if err := writer.WriteField(key, value); err != nil {
				return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
			}
		}
	}
	if err := writer.Close(); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}

	req, err := http.NewRequest(c.Method(), targetURL, body)
	if err != nil {
		log.Printf("[PROXY] build multipart request error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return u.do(c, req)
}

func copyFilePart(writer *multipart.Writer, field string, fileHeader *multipart.FileHeader) error {
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, fileHeader.Filename))
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" {
		h.Set("Content-Type", ct)
	}

	part, err := writer.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	return err
}

func (u *Upstream) do(c fiber.Ctx, req *http.Request) error {
	resp, err := u.client.Do(req)
	if err != nil {
		log.Printf("[PROXY] Error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach designer service"})
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[PROXY] Read response error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if len(values) > 0 {
			c.Set(key, values[0])
		}
	}
	c.Status(resp.StatusCode)
	return c.Send(data)
}
