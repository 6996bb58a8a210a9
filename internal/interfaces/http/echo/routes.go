package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler) {
	v1 := server.Group("/api/v1")

	v1.POST("/imports", importHandler.StartImport)
	v1.GET("/imports", importHandler.ListImportJobs)
	v1.GET("/imports/stats", importHandler.GetImportStats)
	v1.GET("/imports/templates/:kind", importHandler.DownloadTemplate)
	v1.GET("/imports/:id", importHandler.GetImportJob)
	v1.GET("/imports/:id/wait", importHandler.WaitImportJob)
}
