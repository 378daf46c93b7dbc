// Package pdf extracts text from downloaded court PDFs.
//
// The decision between the text layer and OCR is made once per document:
// if any embedded raster image exceeds the scanned-page threshold on both
// axes, every page is rendered and recognised; otherwise the text layer of
// every page is read. Partially scanned documents are therefore fully
// OCRed.
//
// # Libraries
//
//   - pdfcpu: embedded image dimension scan
//   - ledongthuc/pdf: text layer
//   - go-fitz (MuPDF): page rendering for OCR
//   - gosseract (Tesseract): OCR, only with the "ocr" build tag
package pdf
