package report

// documentStyles is inlined into every report so the document stays
// self-contained and renders identically wherever it is opened.
const documentStyles = `
:root{color-scheme:light}
body{margin:0;font-family:'Helvetica Neue',Arial,sans-serif;color:#1f2937;background:#f9fafb}
.report{max-width:760px;margin:0 auto;padding:48px 24px}
.report-header{text-align:center;padding-bottom:32px;border-bottom:1px solid #e5e7eb}
.report-header h1{font-size:32px;margin:0 0 4px}
.report-subtitle{color:#6b7280;text-transform:uppercase;letter-spacing:.12em;font-size:12px;margin:0 0 24px}
.score-gauge{position:relative;width:140px;height:140px;margin:0 auto}
.score-gauge svg{width:140px;height:140px;transform:rotate(-90deg)}
.gauge-track{fill:none;stroke:#e5e7eb;stroke-width:10}
.gauge-fill{fill:none;stroke-width:10;stroke-linecap:round}
.score-value{position:absolute;inset:0;display:flex;align-items:center;justify-content:center;font-size:40px;font-weight:700}
.score-band{font-weight:600;text-transform:uppercase;letter-spacing:.08em;font-size:13px;margin:8px 0 0}
.report-section{padding:32px 0;border-bottom:1px solid #e5e7eb}
.report-section h2{font-size:20px;margin:0 0 16px}
.section-number{color:#9ca3af;font-weight:400;margin-right:12px}
.report-section h3{font-size:16px;margin:16px 0 8px}
.report-section h4{font-size:12px;text-transform:uppercase;letter-spacing:.08em;color:#6b7280;margin:16px 0 8px}
.rank-list{list-style:none;padding:0;margin:0}
.rank-list li{padding:8px 0;display:flex;align-items:baseline}
.rank-badge{display:inline-flex;align-items:center;justify-content:center;min-width:24px;height:24px;border-radius:12px;background:#111827;color:#fff;font-size:12px;font-weight:700;margin-right:12px}
.findings{list-style:none;padding:0;margin:0}
.findings li{padding:4px 0}
.findings .glyph{display:inline-block;width:20px;font-weight:700}
.findings.works .glyph{color:#059669}
.findings.hurts .glyph{color:#dc2626}
.findings.actions .glyph{color:#2563eb}
.pattern-list{padding-left:20px}
.pattern-list li{padding:4px 0}
.diagnosis{color:#374151}
.report-footer{text-align:center;color:#9ca3af;font-size:12px;padding-top:32px}
`
