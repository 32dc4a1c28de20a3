package handlers_test

const (
	profileOK = `{"success":true,"data":{"id":"admin-1","fullName":"Ada Admin","email":"ada@edumarket.test","role":"admin"}}`

	categoriesFlat = `{"success":true,"data":[
	  {"id":"math","name":"Math","slug":"math","order":1},
	  {"id":"algebra","name":"Algebra","slug":"algebra","order":1,"parent":{"id":"math"}},
	  {"id":"linear","name":"Linear","slug":"linear","order":1,"parent":{"id":"algebra"}},
	  {"id":"geometry","name":"Geometry","slug":"geometry","order":2,"parent":{"id":"math"}},
	  {"id":"physics","name":"Physics","slug":"physics","order":2}
	]}`

	categoriesTree = `{"success":true,"data":[
	  {"id":"math","name":"Math","slug":"math","order":1,"children":[
	    {"id":"algebra","name":"Algebra","slug":"algebra","order":1,"children":[
	      {"id":"linear","name":"Linear","slug":"linear","order":1,"children":[]}
	    ]},
	    {"id":"geometry","name":"Geometry","slug":"geometry","order":2,"children":[]}
	  ]},
	  {"id":"physics","name":"Physics","slug":"physics","order":2,"children":[]}
	]}`

	menusFlat = `[
	  {"id":"home","label":"Home","link":"/","order":1,"isActive":true},
	  {"id":"docs","label":"Docs","link":"/categories/math","order":1,"parentId":"home","isActive":true}
	]`

	menusTree = `[
	  {"id":"home","label":"Home","link":"/","order":1,"isActive":true,"children":[
	    {"id":"docs","label":"Docs","link":"/categories/math","order":1,"isActive":true}
	  ]}
	]`

	documentsList = `{"success":true,"data":{"data":[
	  {"id":"d-old","title":"Old notes","status":"approved","price":{"amount":"50000.00","currency":"VND"},"author":{"fullName":"Vy"},"category":{"id":"math","name":"Math"},"createdAt":"2026-01-05T00:00:00Z","fileUrl":"https://files.test/old.pdf"},
	  {"id":"d-new","title":"New exam","status":"pending","createdAt":"2026-03-05T00:00:00Z","fileUrl":"https://files.test/exam.docx"},
	  {"id":"d-mid","title":"Mid slides","status":"pending","createdAt":"2026-02-05T00:00:00Z","fileUrl":"http://localhost:4000/uploads/slides.pptx"}
	],"total":3}}`

	usersList = `{"success":true,"data":[
	  {"id":"u1","email":"vy@edumarket.test","fullName":"Vy Tran","role":"vendor","isActive":true,"createdAt":"2026-01-01T00:00:00Z"},
	  {"id":"u2","email":"an@edumarket.test","fullName":"An Le","role":"buyer","isActive":false,"createdAt":"2026-02-01T00:00:00Z"}
	]}`

	ok = `{"success":true,"code":200,"message":"ok","data":{}}`
)
