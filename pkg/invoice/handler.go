package invoice

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/klokku/freelancer/internal/rest"
	"github.com/klokku/freelancer/pkg/metrics"
	"github.com/klokku/freelancer/pkg/model"
	log "github.com/sirupsen/logrus"
)

type InvoiceDTO struct {
	model.Invoice
	Total float64 `json:"total"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListInvoices godoc
// @Summary List invoices with their totals
// @Tags Invoice
// @Produce json
// @Success 200 {array} InvoiceDTO
// @Router /api/invoices [get]
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	status := model.InvoiceStatus(r.URL.Query().Get("status"))
	dtos := make([]InvoiceDTO, 0, len(invoices))
	for _, i := range invoices {
		if status != "" && i.Status != status {
			continue
		}
		dtos = append(dtos, toDTO(i))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Totals(r.Context())
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, totals)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.service.Get(r.Context(), mux.Vars(r)["invoiceId"])
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(invoice))
}

// CreateInvoice godoc
// @Summary Create a draft invoice
// @Description The client is taken from the project. Number defaults to the next free INV-<year>-<n>.
// @Tags Invoice
// @Accept json
// @Produce json
// @Param invoice body model.Invoice true "Invoice"
// @Success 201 {object} InvoiceDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/invoices [post]
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var invoice model.Invoice
	if !rest.DecodeBody(w, r, &invoice) {
		return
	}
	stored, err := h.service.Create(r.Context(), invoice)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(stored))
}

func (h *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	var invoice model.Invoice
	if !rest.DecodeBody(w, r, &invoice) {
		return
	}
	invoice.Id = mux.Vars(r)["invoiceId"]
	updated, err := h.service.Update(r.Context(), invoice)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Status model.InvoiceStatus `json:"status"`
	}
	if !rest.DecodeBody(w, r, &request) {
		return
	}
	updated, err := h.service.SetStatus(r.Context(), mux.Vars(r)["invoiceId"], request.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Debugf("Invoice %s marked as %s", updated.Number, updated.Status)
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	updated, err := h.service.AppendItem(r.Context(), mux.Vars(r)["invoiceId"])
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(updated))
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	index, ok := itemIndex(w, r)
	if !ok {
		return
	}
	var edit ItemEdit
	if !rest.DecodeBody(w, r, &edit) {
		return
	}
	updated, err := h.service.EditItem(r.Context(), mux.Vars(r)["invoiceId"], index, edit)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	index, ok := itemIndex(w, r)
	if !ok {
		return
	}
	updated, err := h.service.DeleteItem(r.Context(), mux.Vars(r)["invoiceId"], index)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), mux.Vars(r)["invoiceId"])
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func itemIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid item index", err.Error())
		return 0, false
	}
	return index, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownProject):
		rest.WriteError(w, http.StatusBadRequest, "Unknown project", err.Error())
	case errors.Is(err, ErrInvalidStatus):
		rest.WriteError(w, http.StatusBadRequest, "Invalid status", "Status must be one of draft, sent, paid")
	case errors.Is(err, ErrDuplicateNumber):
		rest.WriteError(w, http.StatusConflict, "Duplicate invoice number", err.Error())
	case errors.Is(err, ErrItemIndex):
		rest.WriteError(w, http.StatusBadRequest, "Invalid item index", err.Error())
	default:
		rest.WriteRepositoryError(w, err)
	}
}

func toDTO(invoice model.Invoice) InvoiceDTO {
	return InvoiceDTO{Invoice: invoice, Total: metrics.RoundCents(Total(invoice.Items))}
}
