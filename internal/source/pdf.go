package source

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

const pdfRenderDPI = 150

// FitzPDFSource превращает страницы PDF в кадры на синтетической шкале:
// страница i занимает [i*pageDuration, (i+1)*pageDuration).
type FitzPDFSource struct {
	doc          *fitz.Document
	path         string
	pageDuration float64
}

func NewFitzPDFSource(path string, pageDuration float64) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	if pageDuration <= 0 {
		pageDuration = 1
	}
	if doc.NumPage() == 0 {
		doc.Close()
		return nil, fmt.Errorf("в PDF %s нет страниц", path)
	}
	return &FitzPDFSource{doc: doc, path: path, pageDuration: pageDuration}, nil
}

func (s *FitzPDFSource) Duration() float64 {
	return float64(s.doc.NumPage()) * s.pageDuration
}

func (s *FitzPDFSource) Dimensions() (int, int) {
	rect, err := s.doc.Bound(0)
	if err != nil {
		return 0, 0
	}
	// Размеры страницы в точках (72 dpi), приводим к пикселям рендера.
	return rect.Dx() * pdfRenderDPI / 72, rect.Dy() * pdfRenderDPI / 72
}

func (s *FitzPDFSource) CaptureFrame(ctx context.Context, t float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	index := int(t / s.pageDuration)
	if index < 0 {
		index = 0
	}
	if index >= s.doc.NumPage() {
		index = s.doc.NumPage() - 1
	}

	// fitz.Document не потокобезопасен, для рендера открываем свой
	// экземпляр документа.
	workerDoc, err := fitz.New(s.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()

	return workerDoc.ImageDPI(index, pdfRenderDPI)
}

func (s *FitzPDFSource) Close() error {
	return s.doc.Close()
}
