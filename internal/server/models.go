package server

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/yourorg/crossval/internal/event"
)

// ValidateRequest is the wire form of one document-manifest event plus
// its attachments, as assembled by the caller from the supply-chain
// document.
type ValidateRequest struct {
	DocumentType   string              `json:"documentType"`
	DocumentNumber string              `json:"documentNumber,omitempty"`
	IssueDate      *openapi_types.Date `json:"issueDate,omitempty"`
	ProcessingDate *openapi_types.Date `json:"processingDate,omitempty"`
	Generator      *ActorPayload       `json:"generator,omitempty"`
	Hauler         *ActorPayload       `json:"hauler,omitempty"`
	Recycler       *ActorPayload       `json:"recycler,omitempty"`
	Waste          *WastePayload       `json:"waste,omitempty"`
	WeighingsKg    []float64           `json:"weighingsKg,omitempty"`
	MTRNumbers     []string            `json:"mtrNumbers,omitempty"`
	Attachments    []AttachmentPayload `json:"attachments"`
}

type ActorPayload struct {
	LegalName string          `json:"legalName"`
	TradeName string          `json:"tradeName,omitempty"`
	TaxID     string          `json:"taxId,omitempty"`
	Address   *AddressPayload `json:"address,omitempty"`
}

type AddressPayload struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
}

type WastePayload struct {
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

type AttachmentPayload struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// ToEvent converts the wire form into the canonical event snapshot.
func (r ValidateRequest) ToEvent() *event.ManifestEvent {
	evt := &event.ManifestEvent{
		DocumentType:   event.DocumentType(r.DocumentType),
		DocumentNumber: r.DocumentNumber,
		IssueDate:      dateToTime(r.IssueDate),
		ProcessingDate: dateToTime(r.ProcessingDate),
		Generator:      r.Generator.toActor(),
		Hauler:         r.Hauler.toActor(),
		Recycler:       r.Recycler.toActor(),
		MTRNumbers:     r.MTRNumbers,
	}
	if r.Waste != nil {
		evt.Waste = &event.WasteClassification{Code: r.Waste.Code, Description: r.Waste.Description}
	}
	for _, v := range r.WeighingsKg {
		evt.Weighings = append(evt.Weighings, event.Weighing{ValueKg: v})
	}
	for _, a := range r.Attachments {
		evt.Attachments = append(evt.Attachments, event.Attachment{Label: a.Label, Text: a.Text})
	}
	return evt
}

func (p *ActorPayload) toActor() *event.Actor {
	if p == nil {
		return nil
	}
	actor := &event.Actor{
		LegalName: p.LegalName,
		TradeName: p.TradeName,
		TaxID:     p.TaxID,
	}
	if p.Address != nil {
		actor.Address = &event.Address{
			Street: p.Address.Street,
			City:   p.Address.City,
			State:  p.Address.State,
		}
	}
	return actor
}

func dateToTime(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time.UTC()
	return &t
}
