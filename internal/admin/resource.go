package admin

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go-price-scanner/internal/middleware"
	"go-price-scanner/internal/repository"
	"go-price-scanner/internal/service"
	"go-price-scanner/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Capabilities toggles what a view may do besides listing. Deleting is
// never offered: TableStore has no delete.
type Capabilities struct {
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Export bool `json:"export"`
}

// Field maps a form field onto a column
type Field struct {
	Column string
	// Tag is a validator tag checked against the raw string
	Tag string
	// Parse converts the raw string; nil stores it as is
	Parse func(raw string) (interface{}, error)
}

// View is the type-independent side of a Resource
type View interface {
	Name() string
	Label() string
	Register(r fiber.Router)
}

// Resource is a browse/edit view over one table
type Resource[T any] struct {
	Path    string
	Title   string
	Store   repository.TableStore[T]
	Can     Capabilities
	Access  func(identity *service.Identity) bool
	Columns []string
	// Project renders a row; keys are Columns
	Project func(row *T) map[string]interface{}
	// Editable lists the fields accepted on edit, keyed by form name
	Editable map[string]Field
	// Creatable lists the fields accepted on create
	Creatable map[string]Field
	// Build turns parsed create values (keyed by column) into a row
	Build func(values map[string]interface{}) (*T, error)
}

func (r *Resource[T]) Name() string  { return r.Path }
func (r *Resource[T]) Label() string { return r.Title }

func (r *Resource[T]) Register(router fiber.Router) {
	g := router.Group("/"+r.Path, r.guard)
	g.Get("/", r.list)
	g.Post("/", r.create)
	g.Get("/export", r.export)
	g.Get("/:id", r.get)
	g.Patch("/:id", r.edit)
	g.Put("/:id", r.edit)
	g.Post("/:id/edit", r.edit)
	g.Delete("/:id", methodNotAllowed("Deletion is disabled"))
	g.Post("/:id/delete", methodNotAllowed("Deletion is disabled"))
}

func (r *Resource[T]) guard(c *fiber.Ctx) error {
	if r.Access == nil || !r.Access(middleware.Identity(c)) {
		return fiber.ErrNotFound
	}
	return c.Next()
}

func (r *Resource[T]) list(c *fiber.Ctx) error {
	rows, err := r.Store.List()
	if err != nil {
		return fmt.Errorf("list %s: %w", r.Path, err)
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for i := range rows {
		out = append(out, r.Project(&rows[i]))
	}

	return c.JSON(fiber.Map{
		"view":     r.Path,
		"label":    r.Title,
		"columns":  r.Columns,
		"editable": fieldNames(r.Editable),
		"can":      r.Can,
		"rows":     out,
	})
}

func (r *Resource[T]) get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	row, err := r.Store.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fmt.Errorf("get %s: %w", r.Path, err)
	}
	return c.JSON(r.Project(row))
}

func (r *Resource[T]) edit(c *fiber.Ctx) error {
	if !r.Can.Edit {
		return methodNotAllowed("Editing is disabled")(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	raw, err := readValues(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	values, err := parseValues(raw, r.Editable)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if len(values) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Nothing to update"})
	}

	row, err := r.Store.Update(id, values)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fmt.Errorf("update %s: %w", r.Path, err)
	}
	return c.JSON(fiber.Map{"message": "Record was successfully saved.", "data": r.Project(row)})
}

func (r *Resource[T]) create(c *fiber.Ctx) error {
	if !r.Can.Create || r.Build == nil {
		return methodNotAllowed("Creation is disabled")(c)
	}

	raw, err := readValues(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	values, err := parseValues(raw, r.Creatable)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	row, err := r.Build(values)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.Status(400).JSON(fiber.Map{"error": service.Message(err)})
		}
		return err
	}
	if err := r.Store.Create(row); err != nil {
		return fmt.Errorf("create %s: %w", r.Path, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Record was successfully created.", "data": r.Project(row)})
}

func (r *Resource[T]) export(c *fiber.Ctx) error {
	if !r.Can.Export {
		return methodNotAllowed("Export is disabled")(c)
	}

	rows, err := r.Store.List()
	if err != nil {
		return fmt.Errorf("export %s: %w", r.Path, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s_%s.csv"`, r.Path, time.Now().UTC().Format("2006-01-02_15-04-05")))

	w := csv.NewWriter(c.Response().BodyWriter())
	if err := w.Write(r.Columns); err != nil {
		return err
	}
	for i := range rows {
		projected := r.Project(&rows[i])
		record := make([]string, len(r.Columns))
		for j, col := range r.Columns {
			record[j] = cell(projected[col])
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func methodNotAllowed(msg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": msg})
	}
}

// readValues accepts either a JSON object of strings or a form body
func readValues(c *fiber.Ctx) (map[string]string, error) {
	values := map[string]string{}
	if c.Is("json") {
		var body map[string]interface{}
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return nil, errors.New("Invalid JSON")
		}
		for k, v := range body {
			values[k] = cell(v)
		}
		return values, nil
	}

	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		values[string(key)] = string(value)
	})
	return values, nil
}

func parseValues(raw map[string]string, fields map[string]Field) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(raw))
	for name, value := range raw {
		field, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("Field '%s' is not editable", name)
		}
		if field.Tag != "" {
			if errs := validator.ValidateVar(value, field.Tag); len(errs) > 0 {
				return nil, fmt.Errorf("Field '%s' failed on tag '%s'", name, errs[0].Tag)
			}
		}
		var parsed interface{} = value
		if field.Parse != nil {
			v, err := field.Parse(value)
			if err != nil {
				return nil, fmt.Errorf("Field '%s': %v", name, err)
			}
			parsed = v
		}
		out[field.Column] = parsed
	}
	return out, nil
}

func fieldNames(fields map[string]Field) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
